// Package bitflag provides Flag, an unsigned value guaranteed to have at most
// one bit set.
//
// A Flag is either the zero value ("no bit") or "bit at position p". Topics
// derive their level from a Flag's position, and the zero Flag reports the
// sentinel position Width (64 for Flag64) so that "no level" never collides
// with a real slot.
//
// Checked constructors return errors:
//
//	f, err := bitflag.FromPosition[uint64](3)
//	if errors.Is(err, bitflag.ErrPositionOutOfRange) {
//		// handle bad input
//	}
//
// The Must* constructors are for values the caller has already validated and
// panic on violation. Decoding from JSON or CBOR always re-validates and
// reports a *types.DecodeError.
package bitflag
