package geometry

// Validate checks that a ring can participate in geometric operations:
// at least 4 coordinates with the first equal to the last.
//
// Self-intersection is not checked; the loader that supplies geometry is
// responsible for topological validity. Validation here only guards the
// invariants the predicates rely on.
func Validate(r Ring) error {
	if len(r) < 4 {
		return &ErrInvalidRing{
			NumCoords: len(r),
			Reason:    "a closed ring needs at least 4 coordinates",
		}
	}
	if !r.Closed() {
		return &ErrInvalidRing{
			NumCoords: len(r),
			Reason:    "first coordinate does not equal last",
		}
	}
	return nil
}

// ValidateParts validates every ring of every part.
func ValidateParts(parts []Part) error {
	if len(parts) == 0 {
		return &ErrInvalidRing{Reason: "geometry has no parts"}
	}
	for _, part := range parts {
		if err := Validate(part.Shell); err != nil {
			return err
		}
		for _, hole := range part.Holes {
			if err := Validate(hole); err != nil {
				return err
			}
		}
	}
	return nil
}
