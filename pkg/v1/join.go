package spatialjoin

import (
	"fmt"
	"io"
	"sort"
)

// TieBreak selects how the join resolves a point contained by more than
// one polygon (overlapping interiors, or a point on a boundary shared by
// adjacent polygons).
type TieBreak int

const (
	// TieBreakFirstMatch assigns the point to the containing polygon that
	// appears first in the polygon collection the index was built from.
	// This is the default.
	TieBreakFirstMatch TieBreak = iota

	// TieBreakRank tests every containing candidate and keeps the one
	// preferred by JoinOptions.Rank. Candidates the rank function treats
	// as equal resolve to the earlier one in collection order.
	TieBreakRank
)

// String returns the string representation of the tie-break policy.
func (t TieBreak) String() string {
	switch t {
	case TieBreakFirstMatch:
		return "FirstMatch"
	case TieBreakRank:
		return "Rank"
	default:
		return "Unknown"
	}
}

// SmallestAreaRank is a Rank function preferring the candidate with the
// smaller area, useful when small polygons nest inside larger ones and
// the most specific match should win.
func SmallestAreaRank(a, b *PolygonFeature) bool {
	// Candidates that reach ranking already passed a containment test, so
	// their rings are valid and areas computable.
	areaA, errA := a.Area()
	areaB, errB := b.Area()
	if errA != nil {
		return false
	}
	if errB != nil {
		return true
	}
	return areaA < areaB
}

// JoinOptions controls join behavior, parallelism, and error reporting.
type JoinOptions struct {
	// TieBreak selects the policy for points contained by multiple
	// polygons. Defaults to TieBreakFirstMatch.
	TieBreak TieBreak

	// Rank reports whether a is preferred over b. Required when TieBreak
	// is TieBreakRank, ignored otherwise.
	Rank func(a, b *PolygonFeature) bool

	// CopyPointAttrs names point attributes materialized into each row's
	// Attributes map. Rows carry no attribute copies unless at least one
	// Copy list is set.
	CopyPointAttrs []string

	// CopyPolygonAttrs names polygon attributes materialized into each
	// matched row's Attributes map. On a name collision the polygon value
	// overwrites the point value.
	CopyPolygonAttrs []string

	// RequireMatch makes any unmatched point fail the whole join. By
	// default a point outside every polygon is a valid outcome; hosts
	// whose polygon set is supposed to cover every point can opt into
	// strict matching instead.
	RequireMatch bool

	// Parallel enables concurrent point resolution on a worker pool.
	// Output is identical to a serial join.
	Parallel bool

	// Workers specifies the number of resolution goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// Progress is an optional callback for tracking join progress.
	// Called after each point is resolved with (done, total).
	Progress func(done, total int)

	// ErrorLog is an optional writer for per-record skip details. Each
	// polygon skipped for a malformed geometry is reported here once.
	ErrorLog io.Writer
}

// DefaultJoinOptions returns join options with sensible defaults:
// first-match tie-break, serial execution, no attribute copies.
func DefaultJoinOptions() JoinOptions {
	return JoinOptions{TieBreak: TieBreakFirstMatch}
}

// Row is the join outcome for one point: the point identifier, the
// containing polygon's identifier when one was found, and any attributes
// materialized per JoinOptions.
type Row struct {
	PointID    string
	PolygonID  string // empty when Matched is false
	Matched    bool
	Attributes map[string]interface{} // nil unless Copy*Attrs requested
}

// JoinResult is the complete outcome of one join run.
type JoinResult struct {
	// Rows holds exactly one row per input point, in input order.
	Rows []Row

	// Skipped lists polygons excluded from containment testing because
	// their geometry failed when first touched, sorted by polygon
	// identifier. A skipped polygon never silently disappears from the
	// result.
	Skipped []SkippedPolygon

	// Matched and Unmatched counts always sum to len(Rows). A point
	// outside every polygon is a valid outcome, not an error.
	Matched   int
	Unmatched int
}

// Join relates each point to the polygon that contains it.
//
// For every point, in input order, the index supplies bounding-box
// candidates and the exact boundary-inclusive containment test settles
// membership; ties follow opts.TieBreak. The join is a pure function of
// its inputs and the chosen policy: re-running on unchanged inputs yields
// an identical result.
//
// Example:
//
//	result, err := spatialjoin.Join(points, index, spatialjoin.DefaultJoinOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("matched %d of %d points\n", result.Matched, len(result.Rows))
func Join(points []*PointFeature, index *PolygonIndex, opts JoinOptions) (*JoinResult, error) {
	if index == nil {
		return nil, fmt.Errorf("join: index is nil")
	}
	if opts.TieBreak == TieBreakRank && opts.Rank == nil {
		return nil, fmt.Errorf("join: TieBreakRank requires a Rank function")
	}

	var result *JoinResult
	if opts.Parallel && len(points) > 1 {
		result = joinParallel(points, index, opts)
	} else {
		rows := make([]Row, len(points))
		skips := newSkipSet()
		for i, point := range points {
			row, skipped := resolvePoint(point, index, opts)
			rows[i] = row
			skips.add(skipped, opts.ErrorLog)
			if opts.Progress != nil {
				opts.Progress(i+1, len(points))
			}
		}
		result = finishResult(rows, skips)
	}

	if opts.RequireMatch && result.Unmatched > 0 {
		return nil, fmt.Errorf("join: %d of %d points matched no polygon", result.Unmatched, len(points))
	}
	return result, nil
}

// resolvePoint produces the row for a single point. It reads only the
// shared, read-only index and the point itself, so it is safe to call
// concurrently.
func resolvePoint(point *PointFeature, index *PolygonIndex, opts JoinOptions) (Row, []SkippedPolygon) {
	var skipped []SkippedPolygon
	var best *PolygonFeature

	for _, candidate := range index.Candidates(point.coord) {
		contained, err := candidate.Contains(point.coord)
		if err != nil {
			skipped = append(skipped, SkippedPolygon{PolygonID: candidate.ID(), Err: err})
			continue
		}
		if !contained {
			continue
		}
		if opts.TieBreak == TieBreakFirstMatch {
			best = candidate
			break
		}
		if best == nil || opts.Rank(candidate, best) {
			best = candidate
		}
	}

	row := Row{PointID: point.id}
	if best != nil {
		row.Matched = true
		row.PolygonID = best.id
	}

	if len(opts.CopyPointAttrs) > 0 || len(opts.CopyPolygonAttrs) > 0 {
		row.Attributes = make(map[string]interface{})
		for _, name := range opts.CopyPointAttrs {
			if val, ok := point.Attribute(name); ok {
				row.Attributes[name] = val
			}
		}
		if best != nil {
			for _, name := range opts.CopyPolygonAttrs {
				if val, ok := best.Attribute(name); ok {
					row.Attributes[name] = val
				}
			}
		}
	}

	return row, skipped
}

// skipSet deduplicates per-polygon skip records across points: a polygon
// with a malformed ring fails for every point that reaches it, but is
// reported once.
type skipSet struct {
	seen map[string]error
}

func newSkipSet() *skipSet {
	return &skipSet{seen: make(map[string]error)}
}

func (s *skipSet) add(skipped []SkippedPolygon, errorLog io.Writer) {
	for _, skip := range skipped {
		if _, ok := s.seen[skip.PolygonID]; ok {
			continue
		}
		s.seen[skip.PolygonID] = skip.Err
		if errorLog != nil {
			fmt.Fprintf(errorLog, "spatialjoin: skipping polygon %s: %v\n", skip.PolygonID, skip.Err)
		}
	}
}

// sorted returns the skip records ordered by polygon identifier, so the
// side channel is deterministic regardless of point order or parallelism.
func (s *skipSet) sorted() []SkippedPolygon {
	if len(s.seen) == 0 {
		return nil
	}
	out := make([]SkippedPolygon, 0, len(s.seen))
	for id, err := range s.seen {
		out = append(out, SkippedPolygon{PolygonID: id, Err: err})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PolygonID < out[j].PolygonID
	})
	return out
}

func finishResult(rows []Row, skips *skipSet) *JoinResult {
	result := &JoinResult{
		Rows:    rows,
		Skipped: skips.sorted(),
	}
	for _, row := range rows {
		if row.Matched {
			result.Matched++
		} else {
			result.Unmatched++
		}
	}
	return result
}
