package spatialjoin

import (
	"runtime"
	"sort"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/sync/errgroup"
)

const (
	// minRectExtent pads zero-width or zero-height bounding boxes before
	// insertion; rtreego rectangles need positive side lengths. Padding
	// can only add candidates, never drop a true containing polygon.
	minRectExtent = 1e-9

	// pointQueryTolerance sizes the query rectangle used for point
	// candidate lookups.
	pointQueryTolerance = 1e-9
)

// IndexOptions controls index construction.
type IndexOptions struct {
	// AllowEmpty permits building an index over an empty polygon
	// collection. The resulting index answers every candidate query with
	// no results. When false (the default), BuildIndex fails with
	// EmptyIndexError instead.
	AllowEmpty bool

	// Parallel enables concurrent bounding-box computation during the
	// build. Polygon features are read-only, so this is always safe.
	Parallel bool

	// Workers specifies the number of concurrent bounding-box workers.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int
}

// DefaultIndexOptions returns index options with sensible defaults:
// strict empty policy, parallel build.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		AllowEmpty: false,
		Parallel:   true,
		Workers:    runtime.NumCPU(),
	}
}

// SkippedPolygon records a polygon that could not be processed, with the
// reason. Per-record failures are collected here instead of aborting the
// run; no record is ever dropped without recording why.
type SkippedPolygon struct {
	PolygonID string
	Err       error
}

// indexEntry is one R-tree leaf: a bounding box plus a reference into the
// externally-owned polygon collection.
type indexEntry struct {
	position int // position in the input collection; fixes candidate order
	feature  *PolygonFeature
	bounds   Bounds
	rect     rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *indexEntry) Bounds() rtreego.Rect { return e.rect }

// PolygonIndex answers "which polygons' bounding boxes contain this
// coordinate" in O(log N) via an R-tree.
//
// The index is built once and read-only afterwards; it stores bounding-box
// copies plus references to the polygon features, not the geometry itself,
// so it must not outlive the collection it was built from.
//
// Example:
//
//	index, err := spatialjoin.BuildIndex(polygons, spatialjoin.DefaultIndexOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, polygon := range index.Candidates(spatialjoin.Coordinate{X: 4, Y: 4}) {
//	    // exact containment still needs polygon.Contains(...)
//	}
type PolygonIndex struct {
	rtree   *rtreego.Rtree
	entries []*indexEntry
	skipped []SkippedPolygon
	bounds  Bounds
}

// BuildIndex bulk-constructs a spatial index over the polygon collection.
//
// Polygons whose bounding box cannot be computed (geometry with no
// coordinates) are skipped and reported via Skipped(); they never abort
// the build. Rings that are merely open or too short still index; they
// fail later, at the containment test, and land in the join's skip side
// channel instead. An empty input collection fails with EmptyIndexError
// unless opts.AllowEmpty is set.
func BuildIndex(polygons []*PolygonFeature, opts IndexOptions) (*PolygonIndex, error) {
	if len(polygons) == 0 && !opts.AllowEmpty {
		return nil, &EmptyIndexError{}
	}

	bounds := make([]Bounds, len(polygons))
	errs := make([]error, len(polygons))

	if opts.Parallel && len(polygons) > 1 {
		workers := opts.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range polygons {
			i := i
			g.Go(func() error {
				bounds[i], errs[i] = polygons[i].Bounds()
				return nil
			})
		}
		// Workers never return errors; per-polygon failures land in errs
		// and become skip records below.
		_ = g.Wait()
	} else {
		for i := range polygons {
			bounds[i], errs[i] = polygons[i].Bounds()
		}
	}

	idx := &PolygonIndex{
		// 2D, min 25 / max 50 children per node.
		rtree: rtreego.NewTree(2, 25, 50),
	}

	first := true
	for i, polygon := range polygons {
		if errs[i] != nil {
			idx.skipped = append(idx.skipped, SkippedPolygon{PolygonID: polygon.ID(), Err: errs[i]})
			continue
		}
		rect, err := boundsToRect(bounds[i])
		if err != nil {
			idx.skipped = append(idx.skipped, SkippedPolygon{PolygonID: polygon.ID(), Err: err})
			continue
		}
		entry := &indexEntry{
			position: i,
			feature:  polygon,
			bounds:   bounds[i],
			rect:     rect,
		}
		idx.rtree.Insert(entry)
		idx.entries = append(idx.entries, entry)

		if first {
			idx.bounds = bounds[i]
			first = false
		} else {
			idx.bounds = idx.bounds.Union(bounds[i])
		}
	}

	return idx, nil
}

// boundsToRect converts a bounding box to an R-tree rectangle, padding
// degenerate extents to rtreego's positive-length requirement.
func boundsToRect(b Bounds) (rtreego.Rect, error) {
	lengths := []float64{b.MaxX - b.MinX, b.MaxY - b.MinY}
	for i, l := range lengths {
		if l < minRectExtent {
			lengths[i] = minRectExtent
		}
	}
	return rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, lengths)
}

// Candidates returns every indexed polygon whose bounding box contains the
// coordinate, in polygon collection order.
//
// The result may contain false positives (the point inside a bounding box
// but outside the polygon) and must be resolved with an exact containment
// test; it never omits a truly containing polygon. Candidate order is
// deterministic: sorted by the polygon's position in the collection the
// index was built from, independent of R-tree internals.
func (idx *PolygonIndex) Candidates(c Coordinate) []*PolygonFeature {
	if idx.rtree.Size() == 0 {
		return nil
	}

	point := rtreego.Point{c.X, c.Y}
	spatials := idx.rtree.SearchIntersect(point.ToRect(pointQueryTolerance))
	if len(spatials) == 0 {
		return nil
	}

	matches := make([]*indexEntry, 0, len(spatials))
	for _, s := range spatials {
		entry := s.(*indexEntry)
		// Exact bounding-box check drops neighbors admitted only by the
		// query tolerance or degenerate-extent padding.
		if entry.bounds.Contains(c) {
			matches = append(matches, entry)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})

	result := make([]*PolygonFeature, len(matches))
	for i, entry := range matches {
		result[i] = entry.feature
	}
	return result
}

// Count returns the number of indexed polygons, excluding skipped ones.
func (idx *PolygonIndex) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed polygon bounding boxes.
func (idx *PolygonIndex) Bounds() Bounds {
	return idx.bounds
}

// Skipped returns the polygons that could not be indexed, with reasons.
func (idx *PolygonIndex) Skipped() []SkippedPolygon {
	return idx.skipped
}
