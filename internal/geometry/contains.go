package geometry

// Contains reports whether the point lies within the multi-part polygon.
//
// Boundary policy: a point on any ring segment (shell or hole) counts as
// contained. Interior membership uses the even-odd ray casting rule: inside
// the shell and not strictly inside any hole. A multi-part polygon contains
// the point iff any part does.
//
// A degenerate part (zero-area shell) has an empty interior and an empty
// boundary for containment purposes: it contains nothing, and that is not
// an error. A malformed ring yields ErrInvalidRing the first time it is
// touched.
func Contains(parts []Part, p Coord) (bool, error) {
	for _, part := range parts {
		in, err := partContains(part, p)
		if err != nil {
			return false, err
		}
		if in {
			return true, nil
		}
	}
	return false, nil
}

func partContains(part Part, p Coord) (bool, error) {
	a, err := partArea(part)
	if err != nil {
		return false, err
	}
	if a == 0 {
		// Degenerate part: empty interior, contains nothing.
		return false, nil
	}

	// Boundary check first: boundary points count as contained. A hole
	// boundary belongs to the polygon even though the hole interior does
	// not.
	if onRing(part.Shell, p) {
		return true, nil
	}
	for _, hole := range part.Holes {
		if onRing(hole, p) {
			// Hole boundary only counts if the hole sits inside this
			// part's shell, which validated input guarantees; a point on
			// it is therefore within the shell closure.
			if inRing(part.Shell, p) {
				return true, nil
			}
		}
	}

	if !inRing(part.Shell, p) {
		return false, nil
	}
	for _, hole := range part.Holes {
		if inRing(hole, p) {
			return false, nil
		}
	}
	return true, nil
}

// inRing implements the even-odd ray casting test: a ray from p toward +X
// crossing an odd number of ring edges means p is strictly inside.
// Boundary points are resolved separately by onRing.
func inRing(r Ring, p Coord) bool {
	inside := false
	for i := 0; i < len(r)-1; i++ {
		a, b := r[i], r[i+1]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// X coordinate where the edge crosses the ray's Y.
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// onRing reports whether p lies on any segment of the ring.
func onRing(r Ring, p Coord) bool {
	for i := 0; i < len(r)-1; i++ {
		if onSegment(r[i], r[i+1], p) {
			return true
		}
	}
	return false
}

// onSegment reports whether p lies on the segment from a to b, endpoints
// included. Collinearity is tested with an exact cross product; input
// coordinates are taken as given, with no tolerance.
func onSegment(a, b, p Coord) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	if p.X < min(a.X, b.X) || p.X > max(a.X, b.X) {
		return false
	}
	if p.Y < min(a.Y, b.Y) || p.Y > max(a.Y, b.Y) {
		return false
	}
	return true
}
