// Package geom computes the 2D geometry of photosensor arrays: the outline
// of a single unit in its own frame, and lattice layouts of unit centres in
// the array frame. All operations are pure functions over immutable value
// specs; the same spec always regenerates the same coordinates in the same
// order.
package geom

import "errors"

// ErrInvalidParameter reports a non-physical input: a non-positive size,
// pitch or count, or a malformed shape spec. Operations fail with it before
// producing any output.
var ErrInvalidParameter = errors.New("invalid parameter")
