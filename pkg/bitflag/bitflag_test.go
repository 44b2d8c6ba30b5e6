package bitflag

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/internal/codec"
	"github.com/wayneeseguin/debugkit/pkg/types"
)

func TestWidth(t *testing.T) {
	if w := Width[uint8](); w != 8 {
		t.Errorf("Width[uint8]() = %d, want 8", w)
	}
	if w := Width[uint16](); w != 16 {
		t.Errorf("Width[uint16]() = %d, want 16", w)
	}
	if w := Width[uint32](); w != 32 {
		t.Errorf("Width[uint32]() = %d, want 32", w)
	}
	if w := Width[uint64](); w != 64 {
		t.Errorf("Width[uint64]() = %d, want 64", w)
	}
}

func TestZeroPositionSentinel(t *testing.T) {
	if p := Zero[uint64]().Position(); p != 64 {
		t.Errorf("expected zero flag position 64, got %d", p)
	}
	if p := Zero[uint8]().Position(); p != 8 {
		t.Errorf("expected zero uint8 flag position 8, got %d", p)
	}
	var f Flag64
	if !f.IsZero() {
		t.Error("zero value Flag64 should report IsZero")
	}
	if f != Zero[uint64]() {
		t.Error("zero value should equal Zero()")
	}
}

func TestFromPosition(t *testing.T) {
	for p := 0; p < 64; p++ {
		f, err := FromPosition[uint64](p)
		if err != nil {
			t.Fatalf("FromPosition(%d) unexpected error: %v", p, err)
		}
		if f.Position() != p {
			t.Errorf("FromPosition(%d).Position() = %d", p, f.Position())
		}
		if f.Raw() != uint64(1)<<p {
			t.Errorf("FromPosition(%d).Raw() = %#x", p, f.Raw())
		}
	}

	for _, p := range []int{-1, 64, 65, 1000} {
		_, err := FromPosition[uint64](p)
		if !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("FromPosition(%d) expected ErrPositionOutOfRange, got %v", p, err)
		}
		var pe *PositionError
		if !errors.As(err, &pe) {
			t.Fatalf("FromPosition(%d) expected *PositionError, got %T", p, err)
		}
		if pe.Position != p || pe.Width != 64 {
			t.Errorf("unexpected PositionError fields: %+v", pe)
		}
	}

	if _, err := FromPosition[uint8](8); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("FromPosition[uint8](8) expected ErrPositionOutOfRange, got %v", err)
	}
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name    string
		raw     uint64
		wantErr bool
		pos     int
	}{
		{name: "zero", raw: 0, pos: 64},
		{name: "lowest bit", raw: 1, pos: 0},
		{name: "highest bit", raw: 1 << 63, pos: 63},
		{name: "middle bit", raw: 1 << 17, pos: 17},
		{name: "two bits", raw: 3, wantErr: true},
		{name: "all bits", raw: ^uint64(0), wantErr: true},
		{name: "sparse bits", raw: 1<<63 | 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromRaw(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRawValue) {
					t.Fatalf("expected ErrInvalidRawValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Position() != tt.pos {
				t.Errorf("expected position %d, got %d", tt.pos, f.Position())
			}
		})
	}
}

func TestMustConstructorsPanic(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			if r == nil {
				t.Errorf("%s: expected panic", name)
				return
			}
			if _, ok := r.(error); !ok {
				t.Errorf("%s: expected error panic value, got %T", name, r)
			}
		}()
		fn()
	}

	assertPanics("MustFromRaw", func() { MustFromRaw[uint64](6) })
	assertPanics("MustFromPosition", func() { MustFromPosition[uint64](64) })
	assertPanics("MustFromPosition negative", func() { MustFromPosition[uint32](-1) })

	if f := MustFromPosition[uint16](15); f.Position() != 15 {
		t.Errorf("MustFromPosition(15) = %d", f.Position())
	}
}

func TestString(t *testing.T) {
	if s := Zero[uint64]().String(); s != "Flag(none)" {
		t.Errorf("unexpected zero string %q", s)
	}
	if s := MustFromPosition[uint64](5).String(); s != "Flag(5)" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	flags := []Flag64{Zero[uint64]()}
	for p := 0; p < 64; p++ {
		flags = append(flags, MustFromPosition[uint64](p))
	}

	for _, f := range flags {
		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal %v: %v", f, err)
		}
		var got Flag64
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != f {
			t.Errorf("round trip mismatch: %v != %v", got, f)
		}
	}

	data, _ := json.Marshal(MustFromPosition[uint64](3))
	if string(data) != `{"value":8}` {
		t.Errorf("unexpected wire format %s", data)
	}
}

func TestJSONLegacyPositionKey(t *testing.T) {
	var f Flag64
	if err := json.Unmarshal([]byte(`{"position": 16}`), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Position() != 4 {
		t.Errorf("expected position 4, got %d", f.Position())
	}
}

func TestJSONRejectsCorruptedValues(t *testing.T) {
	for p := 2; p < 64; p++ {
		invalid := fmt.Sprintf(`{ "value": %d }`, (uint64(1)<<p)-1)
		var f Flag64
		err := json.Unmarshal([]byte(invalid), &f)
		if err == nil {
			t.Fatalf("%d: expected error decoding %s, got %v", p, invalid, f)
		}
		var de *types.DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("%d: expected *types.DecodeError, got %T", p, err)
		}
		if de.Field != "value" {
			t.Errorf("expected field 'value', got %q", de.Field)
		}
		if !errors.Is(err, ErrInvalidRawValue) {
			t.Errorf("expected error to match ErrInvalidRawValue")
		}
	}

	var small Flag[uint8]
	err := json.Unmarshal([]byte(`{"value": 256}`), &small)
	if !errors.Is(err, ErrInvalidRawValue) {
		t.Errorf("expected overflow to match ErrInvalidRawValue, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "does not fit") {
		t.Errorf("expected overflow message, got %v", err)
	}

	var missing Flag64
	err = json.Unmarshal([]byte(`{}`), &missing)
	var de *types.DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected DecodeError for missing value, got %v", err)
	}
}

func TestJSONRejectsValuesOutsideTheWireType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "negative value", input: `{"value": -1}`, field: "value"},
		{name: "fractional value", input: `{"value": 1.5}`, field: "value"},
		{name: "string value", input: `{"value": "4"}`, field: "value"},
		{name: "negative legacy position", input: `{"position": -8}`, field: "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flag64
			err := json.Unmarshal([]byte(tt.input), &f)
			var de *types.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *types.DecodeError, got %T: %v", err, err)
			}
			if de.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, de.Field)
			}
			if de.Type != "bitflag.Flag[uint64]" {
				t.Errorf("unexpected type %q", de.Type)
			}
		})
	}
}

func TestCBORRejectsValuesOutsideTheWireType(t *testing.T) {
	data, err := codec.MarshalCBOR(map[string]int64{"value": -1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var f Flag64
	err = f.UnmarshalCBOR(data)
	var de *types.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *types.DecodeError, got %T: %v", err, err)
	}
	if de.Field != "value" {
		t.Errorf("expected field 'value', got %q", de.Field)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	for p := 0; p < 64; p++ {
		f := MustFromPosition[uint64](p)
		data, err := f.MarshalCBOR()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Flag64
		if err := got.UnmarshalCBOR(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != f {
			t.Errorf("round trip mismatch at %d: %v", p, got)
		}
	}
}

func TestCBORRejectsCorruptedValues(t *testing.T) {
	w := wireFlag{}
	v := uint64(0b1010)
	w.Value = &v
	data, err := codec.MarshalCBOR(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var f Flag64
	err = f.UnmarshalCBOR(data)
	if !errors.Is(err, ErrInvalidRawValue) {
		t.Errorf("expected ErrInvalidRawValue, got %v", err)
	}
}
