package spatialjoin

import (
	"fmt"
	"testing"
)

// benchGrid builds a side x side grid of unit-cell polygons and one point
// per cell center.
func benchGrid(side int) ([]*PolygonFeature, []*PointFeature) {
	polygons := make([]*PolygonFeature, 0, side*side)
	points := make([]*PointFeature, 0, side*side)
	for gy := 0; gy < side; gy++ {
		for gx := 0; gx < side; gx++ {
			id := fmt.Sprintf("cell-%d-%d", gx, gy)
			polygons = append(polygons, squareFeature(id, float64(gx), float64(gy), 1))
			points = append(points, NewPointFeature(
				fmt.Sprintf("pt-%d-%d", gx, gy),
				Coordinate{X: float64(gx) + 0.5, Y: float64(gy) + 0.5},
				nil,
			))
		}
	}
	return polygons, points
}

// BenchmarkJoinIndexed joins 10,000 points against 10,000 polygons through
// the R-tree.
func BenchmarkJoinIndexed(b *testing.B) {
	polygons, points := benchGrid(100)
	index, err := BuildIndex(polygons, DefaultIndexOptions())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Join(points, index, DefaultJoinOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkJoinBruteForce is the linear-scan baseline for the same
// workload: every point against every polygon's exact containment test.
func BenchmarkJoinBruteForce(b *testing.B) {
	polygons, points := benchGrid(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matched := 0
		for _, point := range points {
			for _, polygon := range polygons {
				contained, err := polygon.Contains(point.Coordinate())
				if err != nil {
					b.Fatal(err)
				}
				if contained {
					matched++
					break
				}
			}
		}
		if matched != len(points) {
			b.Fatalf("matched %d of %d points", matched, len(points))
		}
	}
}

// BenchmarkJoinParallel measures the worker-pool join over the same grid.
func BenchmarkJoinParallel(b *testing.B) {
	polygons, points := benchGrid(100)
	index, err := BuildIndex(polygons, DefaultIndexOptions())
	if err != nil {
		b.Fatal(err)
	}
	opts := JoinOptions{Parallel: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Join(points, index, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBuildIndex measures bulk index construction over 10,000
// polygons.
func BenchmarkBuildIndex(b *testing.B) {
	polygons, _ := benchGrid(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildIndex(polygons, DefaultIndexOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
