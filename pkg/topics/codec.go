package topics

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/internal/codec"
	"github.com/wayneeseguin/debugkit/pkg/types"
)

// wireTopic is the external representation of a Topic:
// {"level": <int>, "label": <string|null>}.
type wireTopic struct {
	Level *int    `json:"level" cbor:"level"`
	Label *string `json:"label" cbor:"label"`
}

// wireSet is the external representation of a Set: {"topics": [...]}.
// The catch-all flag is never written; it is rederived on load.
type wireSet struct {
	Topics *[]Topic `json:"topics" cbor:"topics"`
}

func (t Topic) toWire() wireTopic {
	level := t.Level()
	w := wireTopic{Level: &level}
	if t.labeled {
		label := t.label
		w.Label = &label
	}
	return w
}

func (t *Topic) fromWire(w wireTopic) error {
	if w.Level == nil {
		return &types.DecodeError{
			Type:  "topics.Topic",
			Field: "level",
			Value: nil,
			Err:   errors.New("missing level"),
		}
	}

	decoded, err := New(*w.Level)
	if err != nil {
		return &types.DecodeError{
			Type:  "topics.Topic",
			Field: "level",
			Value: *w.Level,
			Err:   errors.Cause(err),
		}
	}
	if w.Label != nil {
		decoded = decoded.WithLabel(*w.Label)
	}

	*t = decoded
	return nil
}

// MarshalJSON encodes the topic as {"level": n, "label": "..."}; an
// unlabeled topic writes a null label.
func (t Topic) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toWire())
}

// UnmarshalJSON decodes a topic and rejects levels outside [0, Width-1].
func (t *Topic) UnmarshalJSON(data []byte) error {
	var w wireTopic
	if err := json.Unmarshal(data, &w); err != nil {
		return codec.DecodeFailure("topics.Topic", err)
	}
	return t.fromWire(w)
}

// MarshalCBOR encodes the topic with the same map shape as JSON.
func (t Topic) MarshalCBOR() ([]byte, error) {
	return codec.MarshalCBOR(t.toWire())
}

// UnmarshalCBOR decodes a topic and rejects levels outside [0, Width-1].
func (t *Topic) UnmarshalCBOR(data []byte) error {
	var w wireTopic
	if err := codec.UnmarshalCBOR(data, &w); err != nil {
		return codec.DecodeFailure("topics.Topic", err)
	}
	return t.fromWire(w)
}

func (s Set) toWire() wireSet {
	ts := s.Topics()
	if ts == nil {
		ts = []Topic{}
	}
	return wireSet{Topics: &ts}
}

func (s *Set) fromWire(w wireSet) error {
	if w.Topics == nil {
		return &types.DecodeError{
			Type:  "topics.Set",
			Field: "topics",
			Value: nil,
			Err:   errors.New("missing topics"),
		}
	}
	*s = SetFromSlice(*w.Topics)
	return nil
}

// MarshalJSON encodes the set as {"topics": [...]} sorted by level.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toWire())
}

// UnmarshalJSON decodes a set. Topics sharing a level collapse to the first.
func (s *Set) UnmarshalJSON(data []byte) error {
	var w wireSet
	if err := json.Unmarshal(data, &w); err != nil {
		return codec.DecodeFailure("topics.Set", err)
	}
	return s.fromWire(w)
}

// MarshalCBOR encodes the set with the same map shape as JSON.
func (s Set) MarshalCBOR() ([]byte, error) {
	return codec.MarshalCBOR(s.toWire())
}

// UnmarshalCBOR decodes a set. Topics sharing a level collapse to the first.
func (s *Set) UnmarshalCBOR(data []byte) error {
	var w wireSet
	if err := codec.UnmarshalCBOR(data, &w); err != nil {
		return codec.DecodeFailure("topics.Set", err)
	}
	return s.fromWire(w)
}
