package codec

import (
	"encoding/json"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/pkg/types"
)

// DecodeFailure converts a JSON or CBOR type mismatch, such as a negative
// number for an unsigned field, into a *types.DecodeError naming the wire
// field. A *types.DecodeError already in the chain is kept as is; any other
// error is wrapped with the type name.
func DecodeFailure(typeName string, err error) error {
	var de *types.DecodeError
	if errors.As(err, &de) {
		return errors.Wrapf(err, "decode %s", typeName)
	}

	var jerr *json.UnmarshalTypeError
	if errors.As(err, &jerr) {
		return &types.DecodeError{Type: typeName, Field: lastField(jerr.Field), Value: jerr.Value, Err: err}
	}

	var cerr *cbor.UnmarshalTypeError
	if errors.As(err, &cerr) {
		return &types.DecodeError{Type: typeName, Field: lastField(cerr.StructFieldName), Value: cerr.CBORType, Err: err}
	}

	return errors.Wrapf(err, "decode %s", typeName)
}

// lastField strips the struct and path qualifiers from a field name.
func lastField(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
