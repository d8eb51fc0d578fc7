// Package geometry implements the planar geometry primitives behind the
// spatial join engine: ring validation, bounding boxes, point-in-polygon
// containment, shoelace areas, and area-weighted centroids.
//
// All coordinates are assumed to share a single projected (Euclidean)
// coordinate reference system. The package never transforms coordinates.
package geometry

// Coord is a position in a planar coordinate reference system.
type Coord struct {
	X, Y float64
}

// Ring is one polygon boundary: an ordered, closed sequence of coordinates.
// A valid ring has at least 4 coordinates and its first coordinate equals
// its last. Rings are validated lazily, when first touched by a geometric
// operation, not at construction.
type Ring []Coord

// Part is a single polygon part: one outer shell plus zero or more holes.
// A multi-part polygon is an ordered slice of parts.
type Part struct {
	Shell Ring
	Holes []Ring
}

// Closed reports whether the ring's first coordinate equals its last.
func (r Ring) Closed() bool {
	if len(r) < 2 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// Close returns a closed copy of the ring, appending the first coordinate
// if the ring is open. Already-closed rings are returned unchanged.
func (r Ring) Close() Ring {
	if len(r) < 3 || r.Closed() {
		return r
	}
	closed := make(Ring, len(r)+1)
	copy(closed, r)
	closed[len(r)] = r[0]
	return closed
}

// Bounds computes the axis-aligned bounding box over all rings of all
// parts. Hole vertices are included: holes never shrink the box.
//
// The box is a pure sweep over vertices, so rings that would fail
// validation (open, too short) still produce a box; ring validity is
// checked by the predicates that depend on it, keeping the lazy-validation
// contract. Only a geometry with no coordinates at all fails here.
//
// Returns (minX, minY, maxX, maxY).
func Bounds(parts []Part) (minX, minY, maxX, maxY float64, err error) {
	first := true
	visit := func(r Ring) {
		for _, c := range r {
			if first {
				minX, maxX = c.X, c.X
				minY, maxY = c.Y, c.Y
				first = false
				continue
			}
			if c.X < minX {
				minX = c.X
			}
			if c.X > maxX {
				maxX = c.X
			}
			if c.Y < minY {
				minY = c.Y
			}
			if c.Y > maxY {
				maxY = c.Y
			}
		}
	}

	for _, part := range parts {
		visit(part.Shell)
		for _, hole := range part.Holes {
			visit(hole)
		}
	}
	if first {
		return 0, 0, 0, 0, &ErrInvalidRing{Reason: "geometry has no coordinates"}
	}
	return minX, minY, maxX, maxY, nil
}

// signedArea computes the signed shoelace area of a ring. Positive for
// counter-clockwise winding, negative for clockwise. The ring must already
// be validated.
func signedArea(r Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		a, b := r[i], r[i+1]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area computes the unsigned area of a multi-part polygon: per part, the
// absolute shell area minus the absolute hole areas, clamped at zero, then
// summed across parts. Units are the square of the input linear units.
//
// A degenerate (zero-area) polygon yields 0 with no error; a malformed
// ring yields ErrInvalidRing.
func Area(parts []Part) (float64, error) {
	var total float64
	for _, part := range parts {
		a, err := partArea(part)
		if err != nil {
			return 0, err
		}
		total += a
	}
	return total, nil
}

func partArea(part Part) (float64, error) {
	if err := Validate(part.Shell); err != nil {
		return 0, err
	}
	a := abs(signedArea(part.Shell))
	for _, hole := range part.Holes {
		if err := Validate(hole); err != nil {
			return 0, err
		}
		a -= abs(signedArea(hole))
	}
	if a < 0 {
		a = 0
	}
	return a, nil
}

// Centroid computes the area-weighted centroid of a multi-part polygon:
// shell centroids weighted by shell area, minus hole centroids weighted by
// hole area, combined across parts.
//
// Fails with ErrDegenerateGeometry when the total area is zero, since a
// degenerate polygon has no meaningful center.
func Centroid(parts []Part) (Coord, error) {
	var sumX, sumY, sumA float64

	accumulate := func(r Ring, sign float64) error {
		if err := Validate(r); err != nil {
			return err
		}
		a := signedArea(r)
		if a == 0 {
			return nil
		}
		// Ring centroid via the standard shoelace moment; dividing the
		// moment by the signed area cancels the winding direction.
		var mx, my float64
		for i := 0; i < len(r)-1; i++ {
			p, q := r[i], r[i+1]
			cross := p.X*q.Y - q.X*p.Y
			mx += (p.X + q.X) * cross
			my += (p.Y + q.Y) * cross
		}
		cx := mx / (6 * a)
		cy := my / (6 * a)
		w := sign * abs(a)
		sumX += cx * w
		sumY += cy * w
		sumA += w
		return nil
	}

	for _, part := range parts {
		if err := accumulate(part.Shell, 1); err != nil {
			return Coord{}, err
		}
		for _, hole := range part.Holes {
			if err := accumulate(hole, -1); err != nil {
				return Coord{}, err
			}
		}
	}

	if sumA == 0 {
		return Coord{}, &ErrDegenerateGeometry{Reason: "polygon has zero total area"}
	}
	return Coord{X: sumX / sumA, Y: sumY / sumA}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
