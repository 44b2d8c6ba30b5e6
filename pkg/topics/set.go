package topics

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Set is a collection of topics keyed by level, used as an emission mask.
//
// Membership is by level only. When the set holds a topic at CatchAllLevel,
// Contains reports true for every topic; that flag is read from the members
// on each call. The zero Topic is never stored and never contained.
//
// Set has value semantics: mutating methods copy the members before changing
// them, so a copy made by assignment is unaffected. The zero Set is an empty,
// usable set.
type Set struct {
	members map[int]Topic
}

// EmptySet returns a set with no members.
func EmptySet() Set {
	return Set{}
}

// SetOf returns a set holding the given topics. Later topics with an already
// present level are ignored.
func SetOf(topics ...Topic) Set {
	return SetFromSlice(topics)
}

// SetFromSlice returns a set holding the topics in ts.
func SetFromSlice(ts []Topic) Set {
	return SetFrom(slices.Values(ts))
}

// SetFrom returns a set holding every topic produced by seq.
func SetFrom(seq iter.Seq[Topic]) Set {
	s := Set{members: make(map[int]Topic)}
	for t := range seq {
		if t.IsZero() {
			continue
		}
		if _, ok := s.members[t.Level()]; !ok {
			s.members[t.Level()] = t
		}
	}
	return s
}

// CatchAllSet returns a set holding only the catch-all topic.
func CatchAllSet() Set {
	return SetOf(All)
}

// own replaces the members with a private copy before a mutation.
func (s *Set) own() {
	out := make(map[int]Topic, len(s.members)+1)
	maps.Copy(out, s.members)
	s.members = out
}

func (s Set) with(members map[int]Topic) Set {
	return Set{members: members}
}

// Contains reports whether t passes the mask: always true for a catch-all
// set, otherwise true when a member shares t's level. The zero Topic never
// passes.
func (s Set) Contains(t Topic) bool {
	if t.IsZero() {
		return false
	}
	if s.IsCatchAll() {
		return true
	}
	_, ok := s.members[t.Level()]
	return ok
}

// ContainsMember reports exact membership by level, ignoring the catch-all
// short circuit.
func (s Set) ContainsMember(t Topic) bool {
	_, ok := s.members[t.Level()]
	return ok
}

// Member returns the stored topic sharing t's level.
func (s Set) Member(t Topic) (Topic, bool) {
	m, ok := s.members[t.Level()]
	return m, ok
}

// IsCatchAll reports whether the set holds a topic at CatchAllLevel.
func (s Set) IsCatchAll() bool {
	_, ok := s.members[CatchAllLevel]
	return ok
}

// IsCatchNone reports whether the set lets no topic through. Since the zero
// topic is never stored, that is exactly the empty set.
func (s Set) IsCatchNone() bool {
	return len(s.members) == 0
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.members) == 0
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	return s.with(maps.Clone(s.members))
}

// Union returns the topics in s or o. Where both hold a level, s's topic is kept.
func (s Set) Union(o Set) Set {
	out := make(map[int]Topic, len(s.members)+len(o.members))
	maps.Copy(out, o.members)
	maps.Copy(out, s.members)
	return s.with(out)
}

// Intersection returns the topics of s whose level is also in o.
func (s Set) Intersection(o Set) Set {
	out := make(map[int]Topic)
	for level, t := range s.members {
		if _, ok := o.members[level]; ok {
			out[level] = t
		}
	}
	return s.with(out)
}

// SymmetricDifference returns the topics whose level is in exactly one of s and o.
func (s Set) SymmetricDifference(o Set) Set {
	out := make(map[int]Topic)
	for level, t := range s.members {
		if _, ok := o.members[level]; !ok {
			out[level] = t
		}
	}
	for level, t := range o.members {
		if _, ok := s.members[level]; !ok {
			out[level] = t
		}
	}
	return s.with(out)
}

// Subtracting returns the topics of s whose level is not in o.
func (s Set) Subtracting(o Set) Set {
	out := make(map[int]Topic)
	for level, t := range s.members {
		if _, ok := o.members[level]; !ok {
			out[level] = t
		}
	}
	return s.with(out)
}

// IsSubset reports whether every level of s is in o.
func (s Set) IsSubset(o Set) bool {
	for level := range s.members {
		if _, ok := o.members[level]; !ok {
			return false
		}
	}
	return true
}

// IsSuperset reports whether every level of o is in s.
func (s Set) IsSuperset(o Set) bool {
	return o.IsSubset(s)
}

// IsDisjoint reports whether s and o share no level.
func (s Set) IsDisjoint(o Set) bool {
	for level := range s.members {
		if _, ok := o.members[level]; ok {
			return false
		}
	}
	return true
}

// Equal reports whether s and o hold the same levels.
func (s Set) Equal(o Set) bool {
	return len(s.members) == len(o.members) && s.IsSubset(o)
}

// Insert adds t unless its level is already present. It returns whether t
// was inserted and the member stored for that level afterwards. Inserting
// the zero Topic does nothing.
func (s *Set) Insert(t Topic) (inserted bool, memberAfterInsert Topic) {
	if t.IsZero() {
		return false, Topic{}
	}
	if existing, ok := s.members[t.Level()]; ok {
		return false, existing
	}
	s.own()
	s.members[t.Level()] = t
	return true, t
}

// Update stores t, replacing any member at the same level. It returns the
// replaced member, if there was one. Updating with the zero Topic does nothing.
func (s *Set) Update(t Topic) (old Topic, replaced bool) {
	if t.IsZero() {
		return Topic{}, false
	}
	old, replaced = s.members[t.Level()]
	s.own()
	s.members[t.Level()] = t
	return old, replaced
}

// Remove deletes the member sharing t's level and returns it.
func (s *Set) Remove(t Topic) (Topic, bool) {
	old, ok := s.members[t.Level()]
	if !ok {
		return Topic{}, false
	}
	s.own()
	delete(s.members, t.Level())
	return old, true
}

// FormUnion adds every topic of o whose level is not yet present.
func (s *Set) FormUnion(o Set) {
	*s = s.Union(o)
}

// FormIntersection keeps only the members whose level is in o.
func (s *Set) FormIntersection(o Set) {
	*s = s.Intersection(o)
}

// FormSymmetricDifference keeps the levels present in exactly one of s and o.
func (s *Set) FormSymmetricDifference(o Set) {
	*s = s.SymmetricDifference(o)
}

// Subtract removes every member whose level is in o.
func (s *Set) Subtract(o Set) {
	*s = s.Subtracting(o)
}

// All returns an iterator over the members in no particular order. The
// sequence is lazy and may be ranged over more than once.
func (s Set) All() iter.Seq[Topic] {
	return maps.Values(s.members)
}

// Topics returns the members sorted by level.
func (s Set) Topics() []Topic {
	return slices.SortedFunc(s.All(), func(a, b Topic) int {
		return a.Level() - b.Level()
	})
}

// Levels returns the member levels in ascending order.
func (s Set) Levels() []int {
	return slices.Sorted(maps.Keys(s.members))
}

// String renders the members sorted by level as "[info, 4, error]", using
// each member's label when set and its level otherwise.
func (s Set) String() string {
	names := make([]string, 0, len(s.members))
	for _, t := range s.Topics() {
		names = append(names, t.Name())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
