package geometry

import (
	"fmt"
)

// ErrInvalidRing indicates a ring with too few coordinates or one that is
// not closed. Rings are validated lazily, so this surfaces at the first
// geometric operation that touches the malformed ring.
type ErrInvalidRing struct {
	NumCoords int
	Reason    string
}

func (e *ErrInvalidRing) Error() string {
	if e.NumCoords > 0 {
		return fmt.Sprintf("invalid ring (%d coordinates): %s", e.NumCoords, e.Reason)
	}
	return fmt.Sprintf("invalid ring: %s", e.Reason)
}

// ErrDegenerateGeometry indicates a polygon with zero total area when an
// area-dependent operation (centroid) was requested.
type ErrDegenerateGeometry struct {
	Reason string
}

func (e *ErrDegenerateGeometry) Error() string {
	return fmt.Sprintf("degenerate geometry: %s", e.Reason)
}
