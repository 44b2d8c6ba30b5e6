package bitflag

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
)

// Common errors that can be compared with errors.Is()
var (
	// ErrInvalidRawValue is returned when a raw value has more than one bit set
	// or does not fit the flag width
	ErrInvalidRawValue = errors.New("invalid raw value")

	// ErrPositionOutOfRange is returned when a bit position is outside [0, width)
	ErrPositionOutOfRange = errors.New("position out of range")
)

// RawValueError reports a raw value that cannot back a Flag.
type RawValueError struct {
	Value uint64
	Width int
}

// Error implements the error interface
func (e *RawValueError) Error() string {
	if bits.Len64(e.Value) > e.Width {
		return fmt.Sprintf("invalid raw value %d: does not fit in %d bits", e.Value, e.Width)
	}
	return fmt.Sprintf("invalid raw value %d: %d bits set, at most one allowed", e.Value, bits.OnesCount64(e.Value))
}

// Is reports whether target is ErrInvalidRawValue
func (e *RawValueError) Is(target error) bool {
	return target == ErrInvalidRawValue
}

// PositionError reports a bit position outside the flag width.
type PositionError struct {
	Position int
	Width    int
}

// Error implements the error interface
func (e *PositionError) Error() string {
	return fmt.Sprintf("invalid position %d: must be in range 0..<%d", e.Position, e.Width)
}

// Is reports whether target is ErrPositionOutOfRange
func (e *PositionError) Is(target error) bool {
	return target == ErrPositionOutOfRange
}
