package bitflag

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
)

// Word is the set of unsigned integer types a Flag can be backed by.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Flag holds an unsigned value with at most one bit set. The zero value has
// no bit set and is a valid Flag.
type Flag[T Word] struct {
	raw T
}

// Flag64 is the canonical 64-bit flag used by topics.
type Flag64 = Flag[uint64]

// Width returns the number of bits in T.
func Width[T Word]() int {
	var zero T
	return bits.Len64(uint64(^zero))
}

// Zero returns a flag with no bit set.
func Zero[T Word]() Flag[T] {
	return Flag[T]{}
}

// FromRaw returns a flag holding v. It fails with a *RawValueError matching
// ErrInvalidRawValue when v has more than one bit set.
func FromRaw[T Word](v T) (Flag[T], error) {
	if bits.OnesCount64(uint64(v)) > 1 {
		return Flag[T]{}, errors.WithStack(&RawValueError{Value: uint64(v), Width: Width[T]()})
	}
	return Flag[T]{raw: v}, nil
}

// MustFromRaw is the unchecked form of FromRaw for values the caller has
// already validated. It panics when v has more than one bit set.
func MustFromRaw[T Word](v T) Flag[T] {
	f, err := FromRaw(v)
	if err != nil {
		panic(err)
	}
	return f
}

// FromPosition returns a flag with bit p set. It fails with a *PositionError
// matching ErrPositionOutOfRange unless 0 <= p < Width[T]().
func FromPosition[T Word](p int) (Flag[T], error) {
	w := Width[T]()
	if p < 0 || p >= w {
		return Flag[T]{}, errors.WithStack(&PositionError{Position: p, Width: w})
	}
	return Flag[T]{raw: T(1) << p}, nil
}

// MustFromPosition is the unchecked form of FromPosition. It panics when p is
// out of range.
func MustFromPosition[T Word](p int) Flag[T] {
	f, err := FromPosition[T](p)
	if err != nil {
		panic(err)
	}
	return f
}

// Raw returns the underlying value.
func (f Flag[T]) Raw() T {
	return f.raw
}

// IsZero reports whether no bit is set.
func (f Flag[T]) IsZero() bool {
	return f.raw == 0
}

// Position returns the index of the set bit, counted from the least
// significant bit. For the zero flag it returns Width[T](), one past the last
// valid position; topics rely on this sentinel to represent "no level".
func (f Flag[T]) Position() int {
	if f.raw == 0 {
		return Width[T]()
	}
	return bits.TrailingZeros64(uint64(f.raw))
}

// String returns a short description such as "Flag(3)" or "Flag(none)".
func (f Flag[T]) String() string {
	if f.raw == 0 {
		return "Flag(none)"
	}
	return fmt.Sprintf("Flag(%d)", f.Position())
}
