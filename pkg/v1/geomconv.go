package spatialjoin

import (
	"fmt"

	geom "github.com/twpayne/go-geom"
)

// FromGeom converts a go-geom polygonal geometry into a Geometry. Hosts
// that parse GeoJSON/WKB/WKT through go-geom can hand their values to the
// join without re-describing coordinates.
//
// Only *geom.Polygon and *geom.MultiPolygon are supported; other types
// return an error. Coordinates beyond X and Y (Z, M) are dropped.
func FromGeom(g geom.T) (Geometry, error) {
	switch t := g.(type) {
	case *geom.Polygon:
		part, err := partFromGeomPolygon(t)
		if err != nil {
			return Geometry{}, err
		}
		return NewPolygon(part.Shell, part.Holes...), nil
	case *geom.MultiPolygon:
		parts := make([]PolygonPart, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			part, err := partFromGeomPolygon(t.Polygon(i))
			if err != nil {
				return Geometry{}, fmt.Errorf("multipolygon part %d: %w", i, err)
			}
			parts[i] = part
		}
		return NewMultiPolygon(parts...), nil
	default:
		return Geometry{}, fmt.Errorf("unsupported go-geom type %T (want *geom.Polygon or *geom.MultiPolygon)", g)
	}
}

func partFromGeomPolygon(p *geom.Polygon) (PolygonPart, error) {
	if p.NumLinearRings() == 0 {
		return PolygonPart{}, fmt.Errorf("go-geom polygon has no rings")
	}
	part := PolygonPart{Shell: ringFromCoords(p.LinearRing(0).Coords())}
	for i := 1; i < p.NumLinearRings(); i++ {
		part.Holes = append(part.Holes, ringFromCoords(p.LinearRing(i).Coords()))
	}
	return part, nil
}

func ringFromCoords(coords []geom.Coord) Ring {
	ring := make(Ring, len(coords))
	for i, c := range coords {
		ring[i] = Coordinate{X: c[0], Y: c[1]}
	}
	return ring
}

// PointFromGeom converts a go-geom point into a Coordinate.
func PointFromGeom(p *geom.Point) Coordinate {
	return Coordinate{X: p.X(), Y: p.Y()}
}

// PolygonFeatureFromGeom builds a polygon feature directly from a go-geom
// geometry.
func PolygonFeatureFromGeom(id string, g geom.T, attributes map[string]interface{}) (*PolygonFeature, error) {
	geometry, err := FromGeom(g)
	if err != nil {
		return nil, fmt.Errorf("polygon %s: %w", id, err)
	}
	return NewPolygonFeature(id, geometry, attributes), nil
}

// PointFeatureFromGeom builds a point feature directly from a go-geom
// point.
func PointFeatureFromGeom(id string, p *geom.Point, attributes map[string]interface{}) *PointFeature {
	return NewPointFeature(id, PointFromGeom(p), attributes)
}

// ToGeom converts a Geometry back to a go-geom geometry: a *geom.Polygon
// for the single-polygon variant, a *geom.MultiPolygon otherwise.
func ToGeom(g Geometry) geom.T {
	if g.Type() == GeometryTypePolygon && g.NumParts() == 1 {
		return geom.NewPolygon(geom.XY).MustSetCoords(partCoords(g.Part(0)))
	}
	coords := make([][][]geom.Coord, g.NumParts())
	for i := range coords {
		coords[i] = partCoords(g.Part(i))
	}
	return geom.NewMultiPolygon(geom.XY).MustSetCoords(coords)
}

func partCoords(part PolygonPart) [][]geom.Coord {
	rings := make([][]geom.Coord, 0, 1+len(part.Holes))
	rings = append(rings, coordsFromRing(part.Shell))
	for _, hole := range part.Holes {
		rings = append(rings, coordsFromRing(hole))
	}
	return rings
}

func coordsFromRing(r Ring) []geom.Coord {
	coords := make([]geom.Coord, len(r))
	for i, c := range r {
		coords[i] = geom.Coord{c.X, c.Y}
	}
	return coords
}
