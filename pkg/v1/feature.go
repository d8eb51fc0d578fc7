package spatialjoin

import (
	"sync"

	"github.com/michaelkirk/spatialjoin/internal/geometry"
)

// Coordinate is a position in a single planar coordinate reference system.
//
// All coordinates compared within one join must share the same CRS; the
// library never projects or transforms them.
type Coordinate struct {
	X, Y float64
}

// Ring is an ordered, closed polygon boundary. A valid ring has at least 4
// coordinates with the first equal to the last. Rings are validated lazily,
// when a geometric operation first touches them.
type Ring []Coordinate

// PolygonPart is one shell with zero or more holes.
type PolygonPart struct {
	Shell Ring
	Holes []Ring
}

// GeometryType tags the closed set of geometry variants.
type GeometryType int

const (
	// GeometryTypePolygon is a single shell plus holes.
	GeometryTypePolygon GeometryType = iota

	// GeometryTypeMultiPolygon is an ordered collection of shell+hole
	// parts sharing one identifier and attribute set.
	GeometryTypeMultiPolygon
)

// String returns the string representation of the geometry type.
func (t GeometryType) String() string {
	switch t {
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// Geometry is a polygonal geometry: a single polygon or a multi-polygon.
// Both variants answer containment, bounding-box, area, and centroid
// queries uniformly; every operation dispatches on Type.
type Geometry struct {
	geomType GeometryType
	parts    []geometry.Part
}

// NewPolygon builds a single-polygon geometry from a shell and optional
// holes. The rings are not validated here; malformed rings surface when a
// geometric operation first touches them.
func NewPolygon(shell Ring, holes ...Ring) Geometry {
	return Geometry{
		geomType: GeometryTypePolygon,
		parts:    []geometry.Part{partToCore(PolygonPart{Shell: shell, Holes: holes})},
	}
}

// NewMultiPolygon builds a multi-part geometry from ordered shell+hole
// parts.
func NewMultiPolygon(parts ...PolygonPart) Geometry {
	core := make([]geometry.Part, len(parts))
	for i, p := range parts {
		core[i] = partToCore(p)
	}
	return Geometry{geomType: GeometryTypeMultiPolygon, parts: core}
}

// Type returns the geometry variant tag.
func (g Geometry) Type() GeometryType { return g.geomType }

// NumParts returns the number of shell+hole parts.
func (g Geometry) NumParts() int { return len(g.parts) }

// Part returns the i-th shell+hole part.
func (g Geometry) Part(i int) PolygonPart { return partFromCore(g.parts[i]) }

func partToCore(p PolygonPart) geometry.Part {
	core := geometry.Part{Shell: ringToCore(p.Shell)}
	for _, h := range p.Holes {
		core.Holes = append(core.Holes, ringToCore(h))
	}
	return core
}

func partFromCore(p geometry.Part) PolygonPart {
	part := PolygonPart{Shell: ringFromCore(p.Shell)}
	for _, h := range p.Holes {
		part.Holes = append(part.Holes, ringFromCore(h))
	}
	return part
}

func ringToCore(r Ring) geometry.Ring {
	core := make(geometry.Ring, len(r))
	for i, c := range r {
		core[i] = geometry.Coord(c)
	}
	return core
}

func ringFromCore(r geometry.Ring) Ring {
	ring := make(Ring, len(r))
	for i, c := range r {
		ring[i] = Coordinate(c)
	}
	return ring
}

// PointFeature is an identified point with attribute data. Immutable once
// constructed.
type PointFeature struct {
	id         string
	coord      Coordinate
	attributes map[string]interface{}
}

// NewPointFeature creates a point feature. The attribute map may be nil;
// it is stored as given and must not be mutated afterwards.
func NewPointFeature(id string, coord Coordinate, attributes map[string]interface{}) *PointFeature {
	return &PointFeature{id: id, coord: coord, attributes: attributes}
}

// ID returns the feature identifier.
func (f *PointFeature) ID() string { return f.id }

// Coordinate returns the point's position.
func (f *PointFeature) Coordinate() Coordinate { return f.coord }

// Attributes returns all feature attributes as a map.
func (f *PointFeature) Attributes() map[string]interface{} { return f.attributes }

// Attribute returns a specific attribute value by name.
//
// Returns the value and true if the attribute exists, or nil and false if
// not found.
func (f *PointFeature) Attribute(name string) (interface{}, bool) {
	val, ok := f.attributes[name]
	return val, ok
}

// PolygonFeature is an identified polygonal geometry with attribute data.
// Immutable once constructed; the bounding box is computed on first use and
// cached for the feature's lifetime.
type PolygonFeature struct {
	id         string
	geometry   Geometry
	attributes map[string]interface{}

	boundsOnce sync.Once
	bounds     Bounds
	boundsErr  error
}

// NewPolygonFeature creates a polygon feature. The attribute map may be
// nil; it is stored as given and must not be mutated afterwards.
func NewPolygonFeature(id string, geom Geometry, attributes map[string]interface{}) *PolygonFeature {
	return &PolygonFeature{id: id, geometry: geom, attributes: attributes}
}

// ID returns the feature identifier.
func (f *PolygonFeature) ID() string { return f.id }

// Geometry returns the polygonal geometry.
func (f *PolygonFeature) Geometry() Geometry { return f.geometry }

// Attributes returns all feature attributes as a map.
func (f *PolygonFeature) Attributes() map[string]interface{} { return f.attributes }

// Attribute returns a specific attribute value by name.
func (f *PolygonFeature) Attribute(name string) (interface{}, bool) {
	val, ok := f.attributes[name]
	return val, ok
}

// Bounds returns the axis-aligned bounding box over all rings, holes
// included. Computed once, on first call, and cached. A malformed ring
// fails every call with the same error.
func (f *PolygonFeature) Bounds() (Bounds, error) {
	f.boundsOnce.Do(func() {
		minX, minY, maxX, maxY, err := geometry.Bounds(f.geometry.parts)
		if err != nil {
			f.boundsErr = err
			return
		}
		f.bounds = Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	})
	return f.bounds, f.boundsErr
}

// Validate eagerly checks every ring of the geometry: each must have at
// least 4 coordinates with the first equal to the last.
//
// Calling it is optional. Geometry is otherwise validated lazily, with
// malformed rings surfacing as per-record skips during a join; hosts that
// prefer to reject bad input at load time can call Validate up front and
// classify failures with IsInvalidRing.
func (f *PolygonFeature) Validate() error {
	return geometry.ValidateParts(f.geometry.parts)
}

// Contains reports whether the coordinate lies within the polygon.
//
// Boundary policy: points on any ring segment, shell or hole, count as
// contained. A degenerate (zero-area) polygon contains nothing, and that is
// not an error; a malformed ring returns an error classified by
// IsInvalidRing.
func (f *PolygonFeature) Contains(c Coordinate) (bool, error) {
	return geometry.Contains(f.geometry.parts, geometry.Coord(c))
}

// Area returns the unsigned polygon area: shell areas minus hole areas,
// summed across parts, in the square of the input linear units. Degenerate
// polygons report 0 without error.
func (f *PolygonFeature) Area() (float64, error) {
	return geometry.Area(f.geometry.parts)
}

// Centroid returns the area-weighted centroid of shells minus holes.
// Fails for zero-area geometry; classify with IsDegenerateGeometry.
func (f *PolygonFeature) Centroid() (Coordinate, error) {
	c, err := geometry.Centroid(f.geometry.parts)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate(c), nil
}
