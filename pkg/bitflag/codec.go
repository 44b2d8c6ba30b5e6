package bitflag

import (
	"encoding/json"
	"fmt"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/internal/codec"
	"github.com/wayneeseguin/debugkit/pkg/types"
)

// wireFlag is the external representation of a Flag. Older encoders wrote
// the raw value under "position"; both keys carry the raw value.
type wireFlag struct {
	Value    *uint64 `json:"value,omitempty" cbor:"value,omitempty"`
	Position *uint64 `json:"position,omitempty" cbor:"position,omitempty"`
}

func (f Flag[T]) toWire() wireFlag {
	v := uint64(f.raw)
	return wireFlag{Value: &v}
}

func (f *Flag[T]) fromWire(w wireFlag) error {
	field, v := "value", w.Value
	if v == nil {
		field, v = "position", w.Position
	}
	if v == nil {
		return &types.DecodeError{
			Type:  f.typeName(),
			Field: "value",
			Value: nil,
			Err:   errors.New("missing raw value"),
		}
	}

	width := Width[T]()
	if bits.Len64(*v) > width || bits.OnesCount64(*v) > 1 {
		return &types.DecodeError{
			Type:  f.typeName(),
			Field: field,
			Value: *v,
			Err:   &RawValueError{Value: *v, Width: width},
		}
	}

	f.raw = T(*v)
	return nil
}

func (f Flag[T]) typeName() string {
	return fmt.Sprintf("bitflag.Flag[uint%d]", Width[T]())
}

// MarshalJSON encodes the flag as {"value": <raw>}.
func (f Flag[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toWire())
}

// UnmarshalJSON decodes {"value": <raw>} (or the legacy {"position": <raw>})
// and re-validates the single-bit invariant.
func (f *Flag[T]) UnmarshalJSON(data []byte) error {
	var w wireFlag
	if err := json.Unmarshal(data, &w); err != nil {
		return codec.DecodeFailure(f.typeName(), err)
	}
	return f.fromWire(w)
}

// MarshalCBOR encodes the flag with the same map shape as JSON.
func (f Flag[T]) MarshalCBOR() ([]byte, error) {
	return codec.MarshalCBOR(f.toWire())
}

// UnmarshalCBOR decodes a CBOR map and re-validates the single-bit invariant.
func (f *Flag[T]) UnmarshalCBOR(data []byte) error {
	var w wireFlag
	if err := codec.UnmarshalCBOR(data, &w); err != nil {
		return codec.DecodeFailure(f.typeName(), err)
	}
	return f.fromWire(w)
}
