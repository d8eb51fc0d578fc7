// Package spatialjoin relates point features to the polygon features that
// contain them, and aggregates attributes across that relationship.
//
// The package is a pure in-memory library. It consumes already-parsed,
// already-projected feature collections (parsing CSV/GeoJSON/WKT and CRS
// projection are the host's job), joins them through an R-tree spatial
// index, and returns plain values.
//
// # Basic Usage
//
//	polygons := []*spatialjoin.PolygonFeature{
//	    spatialjoin.NewPolygonFeature("joes-park", joesParkGeometry, joesParkAttrs),
//	    spatialjoin.NewPolygonFeature("memorial-park", memorialGeometry, memorialAttrs),
//	}
//	points := []*spatialjoin.PointFeature{
//	    spatialjoin.NewPointFeature("p1", spatialjoin.Coordinate{X: 1, Y: 2}, nil),
//	    spatialjoin.NewPointFeature("p2", spatialjoin.Coordinate{X: 9, Y: 9}, nil),
//	}
//
//	index, err := spatialjoin.BuildIndex(polygons, spatialjoin.DefaultIndexOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := spatialjoin.Join(points, index, spatialjoin.DefaultJoinOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range result.Rows {
//	    fmt.Printf("%s -> %s (matched=%v)\n", row.PointID, row.PolygonID, row.Matched)
//	}
//
// # Aggregation
//
// Join rows fold into per-polygon summaries:
//
//	agg := spatialjoin.Aggregate(result, spatialjoin.AggregateOptions{CollectPoints: true})
//	for _, rec := range agg.SortBy(func(r *spatialjoin.AggregateRecord) float64 {
//	    return float64(r.Count)
//	}, true) {
//	    fmt.Printf("%s: %d points\n", rec.PolygonID, rec.Count)
//	}
//	fmt.Printf("unmatched: %d\n", agg.Unmatched())
//
// # Performance
//
// The index answers "which polygon bounding boxes contain this point" in
// O(log N) through an R-tree, so a full join costs roughly O((N+M) log N)
// instead of the O(N×M) of brute-force comparison. Candidate lists never
// omit a containing polygon; exact membership is settled by a
// boundary-inclusive point-in-polygon test.
//
// # Concurrency
//
// Features and the index are read-only after construction and safe to share
// across goroutines. JoinOptions.Parallel resolves points on a worker pool;
// output is identical to a serial join.
package spatialjoin
