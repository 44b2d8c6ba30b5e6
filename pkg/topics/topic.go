package topics

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/wayneeseguin/debugkit/pkg/bitflag"
)

const (
	// Width is the number of topic slots.
	Width = 64

	// CatchAllLevel is the reserved top slot. A Set holding a topic at this
	// level contains every topic. The slot scales with Width.
	CatchAllLevel = Width - 1

	// NoLevel is the level reported by the zero Topic.
	NoLevel = Width
)

// Topic is a diagnostic category identified by its level. The label is
// cosmetic: two topics with the same level and different labels are
// interchangeable in every Set operation. Use Equal rather than == to compare
// topics, since == also compares labels.
//
// The zero Topic carries no level (Level() == NoLevel).
type Topic struct {
	bit     bitflag.Flag64
	label   string
	labeled bool
}

// All is the conventional catch-all topic. Applications may relabel it or
// replace it entirely.
var All = MustLabeled(CatchAllLevel, "all")

// New returns an unlabeled topic at level. It fails with a *LevelError
// matching ErrLevelOutOfRange when level is outside [0, Width-1].
func New(level int) (Topic, error) {
	bit, err := bitflag.FromPosition[uint64](level)
	if err != nil {
		return Topic{}, errors.WithStack(&LevelError{Level: level, Err: err})
	}
	return Topic{bit: bit}, nil
}

// NewLabeled returns a labeled topic at level. The label may be empty, which
// is distinct from having no label at all.
func NewLabeled(level int, label string) (Topic, error) {
	t, err := New(level)
	if err != nil {
		return Topic{}, err
	}
	t.label = label
	t.labeled = true
	return t, nil
}

// MustNew is the unchecked form of New for levels known at compile time.
// It panics when level is out of range.
func MustNew(level int) Topic {
	t, err := New(level)
	if err != nil {
		panic(err)
	}
	return t
}

// MustLabeled is the unchecked form of NewLabeled.
func MustLabeled(level int, label string) Topic {
	t, err := NewLabeled(level, label)
	if err != nil {
		panic(err)
	}
	return t
}

// FromFlag returns a topic whose level is the position of bit. A zero flag
// yields a topic with NoLevel. At most one label is used.
func FromFlag(bit bitflag.Flag64, label ...string) Topic {
	t := Topic{bit: bit}
	if len(label) > 0 {
		t.label = label[0]
		t.labeled = true
	}
	return t
}

// Level returns the topic slot, or NoLevel for the zero Topic.
func (t Topic) Level() int {
	return t.bit.Position()
}

// Label returns the label and whether one was set.
func (t Topic) Label() (string, bool) {
	return t.label, t.labeled
}

// HasLabel reports whether a label (possibly empty) was set.
func (t Topic) HasLabel() bool {
	return t.labeled
}

// IsZero reports whether the topic carries no level.
func (t Topic) IsZero() bool {
	return t.bit.IsZero()
}

// Flag returns the single-bit value backing the topic.
func (t Topic) Flag() bitflag.Flag64 {
	return t.bit
}

// WithLabel returns a copy of t carrying label.
func (t Topic) WithLabel(label string) Topic {
	t.label = label
	t.labeled = true
	return t
}

// Equal reports whether t and o share a level. Labels are ignored.
func (t Topic) Equal(o Topic) bool {
	return t.bit == o.bit
}

// IsCatchAll reports whether t sits in the reserved catch-all slot.
func (t Topic) IsCatchAll() bool {
	return t.Level() == CatchAllLevel
}

// Name returns the label when one is set, otherwise the decimal level.
func (t Topic) Name() string {
	if t.labeled {
		return t.label
	}
	return strconv.Itoa(t.Level())
}

// String implements fmt.Stringer
func (t Topic) String() string {
	return t.Name()
}
