package spatialjoin

import (
	"sort"
)

// AggregateOptions selects which reducers run during aggregation. Count is
// always computed.
type AggregateOptions struct {
	// SumAttrs names row attributes accumulated as running sums. The
	// attributes must be materialized onto rows via JoinOptions
	// CopyPointAttrs/CopyPolygonAttrs.
	SumAttrs []string

	// MaxAttrs names row attributes tracked as running maxima, together
	// with the point identifier that carried the maximum.
	MaxAttrs []string

	// CollectPoints records the matched point identifiers per polygon, in
	// row order.
	CollectPoints bool
}

// DefaultAggregateOptions returns aggregate options running only the
// count reducer.
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{}
}

// MaxValue is a running maximum and the point that carried it.
type MaxValue struct {
	PointID string
	Value   float64
}

// AggregateRecord is the per-polygon summary. Created when the first point
// is assigned to the polygon, updated monotonically during aggregation,
// read-only afterwards.
type AggregateRecord struct {
	PolygonID string

	// Count of points contained by this polygon.
	Count int

	// Sums holds running sums per SumAttrs attribute.
	Sums map[string]float64

	// Maxes holds running maxima per MaxAttrs attribute.
	Maxes map[string]MaxValue

	// Points lists matched point identifiers when CollectPoints is set.
	Points []string

	// SkippedValues counts attribute values that a numeric reducer could
	// not use (missing or non-numeric). Bad values are tallied, never
	// silently dropped, and never fail the run.
	SkippedValues int
}

// Aggregation maps polygon identifiers to their aggregate records, plus
// the tally of points no polygon contained.
type Aggregation struct {
	opts      AggregateOptions
	records   map[string]*AggregateRecord
	unmatched int
}

// Aggregate folds join rows into per-polygon summaries.
//
// Rows with no matched polygon increment the Unmatched tally; they are
// accounted for, not dropped. The fold is a pure function of the rows and
// options: re-running yields an identical aggregation.
//
// Example:
//
//	agg := spatialjoin.Aggregate(result, spatialjoin.AggregateOptions{
//	    SumAttrs:      []string{"population"},
//	    CollectPoints: true,
//	})
//	if rec, ok := agg.Record("joes-park"); ok {
//	    fmt.Printf("%d points, total population %v\n", rec.Count, rec.Sums["population"])
//	}
func Aggregate(result *JoinResult, opts AggregateOptions) *Aggregation {
	agg := &Aggregation{
		opts:    opts,
		records: make(map[string]*AggregateRecord),
	}
	for _, row := range result.Rows {
		agg.fold(row)
	}
	return agg
}

func (a *Aggregation) fold(row Row) {
	if !row.Matched {
		a.unmatched++
		return
	}

	rec := a.records[row.PolygonID]
	if rec == nil {
		rec = newAggregateRecord(row.PolygonID, a.opts)
		a.records[row.PolygonID] = rec
	}
	rec.Count++

	for _, attr := range a.opts.SumAttrs {
		val, ok := numericAttr(row, attr)
		if !ok {
			rec.SkippedValues++
			continue
		}
		rec.Sums[attr] += val
	}
	for _, attr := range a.opts.MaxAttrs {
		val, ok := numericAttr(row, attr)
		if !ok {
			rec.SkippedValues++
			continue
		}
		rec.Maxes[attr] = maxOf(rec.Maxes[attr], MaxValue{PointID: row.PointID, Value: val})
	}
	if a.opts.CollectPoints {
		rec.Points = append(rec.Points, row.PointID)
	}
}

func newAggregateRecord(polygonID string, opts AggregateOptions) *AggregateRecord {
	rec := &AggregateRecord{PolygonID: polygonID}
	if len(opts.SumAttrs) > 0 {
		rec.Sums = make(map[string]float64, len(opts.SumAttrs))
	}
	if len(opts.MaxAttrs) > 0 {
		rec.Maxes = make(map[string]MaxValue, len(opts.MaxAttrs))
	}
	return rec
}

// maxOf combines two running maxima deterministically: larger value wins,
// equal values resolve to the lexicographically smaller point identifier.
// A zero-value MaxValue (empty PointID) is treated as absent. The rule is
// associative and commutative, so partial aggregations merge in any order.
func maxOf(a, b MaxValue) MaxValue {
	if a.PointID == "" {
		return b
	}
	if b.PointID == "" {
		return a
	}
	if b.Value > a.Value || (b.Value == a.Value && b.PointID < a.PointID) {
		return b
	}
	return a
}

// numericAttr extracts an attribute from a row as a float64.
func numericAttr(row Row, name string) (float64, bool) {
	val, ok := row.Attributes[name]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Record returns the aggregate record for a polygon identifier.
func (a *Aggregation) Record(polygonID string) (*AggregateRecord, bool) {
	rec, ok := a.records[polygonID]
	return rec, ok
}

// Records returns the full identifier-to-record mapping. Read-only once
// aggregation completes.
func (a *Aggregation) Records() map[string]*AggregateRecord {
	return a.records
}

// Unmatched returns the count of points contained by no polygon.
func (a *Aggregation) Unmatched() int {
	return a.unmatched
}

// Merge folds another partial aggregation into this one: counts, sums and
// skipped-value tallies add, maxima compare, unmatched tallies add. For
// count, sum and max reducers the merge is associative and commutative, so
// points may be partitioned arbitrarily across workers and merged in any
// order. Collected point-id lists concatenate in merge argument order;
// hosts that need the exact serial order must aggregate serially.
//
// The other aggregation's records are copied, never aliased.
func (a *Aggregation) Merge(other *Aggregation) {
	a.unmatched += other.unmatched
	for id, src := range other.records {
		dst := a.records[id]
		if dst == nil {
			dst = newAggregateRecord(id, a.opts)
			a.records[id] = dst
		}
		dst.Count += src.Count
		dst.SkippedValues += src.SkippedValues
		for attr, sum := range src.Sums {
			if dst.Sums == nil {
				dst.Sums = make(map[string]float64, len(src.Sums))
			}
			dst.Sums[attr] += sum
		}
		for attr, max := range src.Maxes {
			if dst.Maxes == nil {
				dst.Maxes = make(map[string]MaxValue, len(src.Maxes))
			}
			dst.Maxes[attr] = maxOf(dst.Maxes[attr], max)
		}
		dst.Points = append(dst.Points, src.Points...)
	}
}

// Filter returns the records satisfying the predicate, sorted by polygon
// identifier for deterministic output.
//
// Example:
//
//	nonEmpty := agg.Filter(func(r *spatialjoin.AggregateRecord) bool {
//	    return r.Count > 0
//	})
func (a *Aggregation) Filter(pred func(*AggregateRecord) bool) []*AggregateRecord {
	var out []*AggregateRecord
	for _, rec := range a.records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PolygonID < out[j].PolygonID
	})
	return out
}

// SortBy returns all records ordered by the key. The sort is stable and
// ties break by polygon identifier, so equal inputs always produce equal
// output.
//
// Example:
//
//	busiest := agg.SortBy(func(r *spatialjoin.AggregateRecord) float64 {
//	    return float64(r.Count)
//	}, true) // descending
func (a *Aggregation) SortBy(key func(*AggregateRecord) float64, descending bool) []*AggregateRecord {
	out := make([]*AggregateRecord, 0, len(a.records))
	for _, rec := range a.records {
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if ki != kj {
			if descending {
				return ki > kj
			}
			return ki < kj
		}
		return out[i].PolygonID < out[j].PolygonID
	})
	return out
}
