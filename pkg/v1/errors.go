package spatialjoin

import (
	"errors"

	"github.com/michaelkirk/spatialjoin/internal/geometry"
)

// EmptyIndexError indicates BuildIndex received an empty polygon collection
// under the strict (default) policy. No join can proceed without an index,
// so this is the one run-fatal error in the library; set
// IndexOptions.AllowEmpty to opt into an index that answers every query
// with no candidates instead.
type EmptyIndexError struct{}

func (e *EmptyIndexError) Error() string {
	return "spatialjoin: cannot build index over empty polygon collection"
}

// IsEmptyIndex reports whether err is an EmptyIndexError.
func IsEmptyIndex(err error) bool {
	var e *EmptyIndexError
	return errors.As(err, &e)
}

// IsInvalidRing reports whether err stems from a ring with too few
// coordinates or one that is not closed. These surface lazily, when the
// malformed geometry is first touched, and are always per-record: one bad
// polygon never aborts a build or a join.
func IsInvalidRing(err error) bool {
	var e *geometry.ErrInvalidRing
	return errors.As(err, &e)
}

// IsDegenerateGeometry reports whether err stems from a zero-area polygon
// being asked for its centroid.
func IsDegenerateGeometry(err error) bool {
	var e *geometry.ErrDegenerateGeometry
	return errors.As(err, &e)
}
