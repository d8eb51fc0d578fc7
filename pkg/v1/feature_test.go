package spatialjoin

import (
	"math"
	"testing"
)

func TestPointFeatureAccessors(t *testing.T) {
	point := NewPointFeature("sensor-7", Coordinate{X: 3, Y: 4}, map[string]interface{}{
		"reading": 1.5,
	})

	if point.ID() != "sensor-7" {
		t.Errorf("ID() = %q, want sensor-7", point.ID())
	}
	if got := point.Coordinate(); got != (Coordinate{X: 3, Y: 4}) {
		t.Errorf("Coordinate() = %+v", got)
	}
	if val, ok := point.Attribute("reading"); !ok || val != 1.5 {
		t.Errorf("Attribute(reading) = %v, %v", val, ok)
	}
	if _, ok := point.Attribute("missing"); ok {
		t.Error("Attribute(missing) reported present")
	}

	// Nil attribute maps are fine.
	bare := NewPointFeature("bare", Coordinate{}, nil)
	if _, ok := bare.Attribute("anything"); ok {
		t.Error("nil-attribute feature reported an attribute")
	}
}

func TestPolygonFeatureBoundsCached(t *testing.T) {
	polygon := squareFeature("sq", 2, 3, 4)

	first, err := polygon.Bounds()
	if err != nil {
		t.Fatalf("Bounds() error: %v", err)
	}
	want := Bounds{MinX: 2, MinY: 3, MaxX: 6, MaxY: 7}
	if first != want {
		t.Errorf("Bounds() = %+v, want %+v", first, want)
	}

	second, err := polygon.Bounds()
	if err != nil {
		t.Fatalf("second Bounds() error: %v", err)
	}
	if second != first {
		t.Errorf("cached Bounds() = %+v, want %+v", second, first)
	}
}

func TestPolygonFeatureBoundsError(t *testing.T) {
	empty := NewPolygonFeature("empty", NewPolygon(Ring{}), nil)

	_, err := empty.Bounds()
	if !IsInvalidRing(err) {
		t.Fatalf("Bounds() error = %v, want invalid ring", err)
	}
	// The error is cached alongside the box.
	_, err2 := empty.Bounds()
	if err2 == nil || err2.Error() != err.Error() {
		t.Errorf("second Bounds() error = %v, want repeat of %v", err2, err)
	}
}

func TestPolygonFeatureValidate(t *testing.T) {
	tests := []struct {
		name    string
		geom    Geometry
		wantErr bool
	}{
		{"closed square", NewPolygon(squareRing(0, 0, 1)), false},
		{"open ring", NewPolygon(Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}), true},
		{"too few coordinates", NewPolygon(Ring{{0, 0}, {1, 1}, {0, 0}}), true},
		{"open hole", NewPolygon(squareRing(0, 0, 10), Ring{{2, 2}, {4, 2}, {4, 4}}), true},
		{"no parts", Geometry{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPolygonFeature("f", tt.geom, nil).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidRing(err) {
				t.Errorf("Validate() error = %v, want invalid ring classification", err)
			}
		})
	}
}

func TestPolygonFeatureContains(t *testing.T) {
	donut := NewPolygonFeature("donut", NewPolygon(
		squareRing(0, 0, 10),
		squareRing(4, 4, 2),
	), nil)

	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"interior", Coordinate{X: 1, Y: 1}, true},
		{"inside hole", Coordinate{X: 5, Y: 5}, false},
		{"on hole boundary", Coordinate{X: 4, Y: 5}, true},
		{"on shell boundary", Coordinate{X: 0, Y: 5}, true},
		{"outside", Coordinate{X: 11, Y: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := donut.Contains(tt.c)
			if err != nil {
				t.Fatalf("Contains() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestPolygonFeatureArea(t *testing.T) {
	donut := NewPolygonFeature("donut", NewPolygon(
		squareRing(0, 0, 10),
		squareRing(2, 2, 3),
	), nil)

	area, err := donut.Area()
	if err != nil {
		t.Fatalf("Area() error: %v", err)
	}
	if math.Abs(area-91) > 1e-9 {
		t.Errorf("Area() = %v, want 91", area)
	}

	degenerate := NewPolygonFeature("line", NewPolygon(Ring{
		{0, 0}, {1, 1}, {2, 2}, {0, 0},
	}), nil)
	area, err = degenerate.Area()
	if err != nil {
		t.Fatalf("Area() on degenerate geometry error: %v", err)
	}
	if area != 0 {
		t.Errorf("degenerate Area() = %v, want 0", area)
	}
}

func TestPolygonFeatureCentroid(t *testing.T) {
	polygon := squareFeature("sq", 10, 20, 4)

	c, err := polygon.Centroid()
	if err != nil {
		t.Fatalf("Centroid() error: %v", err)
	}
	if c != (Coordinate{X: 12, Y: 22}) {
		t.Errorf("Centroid() = %+v, want (12,22)", c)
	}

	degenerate := NewPolygonFeature("line", NewPolygon(Ring{
		{0, 0}, {1, 1}, {2, 2}, {0, 0},
	}), nil)
	if _, err := degenerate.Centroid(); !IsDegenerateGeometry(err) {
		t.Errorf("degenerate Centroid() error = %v, want degenerate geometry", err)
	}
}

func TestMultiPolygonGeometry(t *testing.T) {
	g := NewMultiPolygon(
		PolygonPart{Shell: squareRing(0, 0, 2)},
		PolygonPart{Shell: squareRing(10, 0, 2), Holes: []Ring{squareRing(10.5, 0.5, 1)}},
	)

	if g.Type() != GeometryTypeMultiPolygon {
		t.Errorf("Type() = %v, want MultiPolygon", g.Type())
	}
	if g.NumParts() != 2 {
		t.Fatalf("NumParts() = %d, want 2", g.NumParts())
	}
	if len(g.Part(1).Holes) != 1 {
		t.Errorf("Part(1) has %d holes, want 1", len(g.Part(1).Holes))
	}

	// Containment dispatches across parts.
	feature := NewPolygonFeature("mp", g, nil)
	for _, tt := range []struct {
		c    Coordinate
		want bool
	}{
		{Coordinate{X: 1, Y: 1}, true},
		{Coordinate{X: 10.2, Y: 0.2}, true},
		{Coordinate{X: 11, Y: 1}, false}, // inside the second part's hole
		{Coordinate{X: 5, Y: 1}, false},  // the gap between parts
	} {
		got, err := feature.Contains(tt.c)
		if err != nil {
			t.Fatalf("Contains() error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestGeometryTypeString(t *testing.T) {
	tests := []struct {
		geomType GeometryType
		want     string
	}{
		{GeometryTypePolygon, "Polygon"},
		{GeometryTypeMultiPolygon, "MultiPolygon"},
		{GeometryType(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.geomType.String(); got != tt.want {
			t.Errorf("GeometryType(%d).String() = %q, want %q", tt.geomType, got, tt.want)
		}
	}
}

func TestBoundsOperations(t *testing.T) {
	a := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Bounds{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}

	if !a.Intersects(b) {
		t.Error("overlapping bounds should intersect")
	}
	if a.Intersects(Bounds{MinX: 20, MinY: 20, MaxX: 30, MaxY: 30}) {
		t.Error("disjoint bounds should not intersect")
	}

	union := a.Union(b)
	if union != (Bounds{MinX: 0, MinY: 0, MaxX: 15, MaxY: 15}) {
		t.Errorf("Union() = %+v", union)
	}

	expanded := a.Expand(1)
	if expanded != (Bounds{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}) {
		t.Errorf("Expand(1) = %+v", expanded)
	}

	if !a.Contains(Coordinate{X: 10, Y: 10}) {
		t.Error("Contains() should include edges")
	}
	if a.Contains(Coordinate{X: 10.1, Y: 5}) {
		t.Error("Contains() accepted a coordinate outside the box")
	}
}
