package topics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps labels to topics. Applications build one at startup from
// their named topics and pass it to whatever needs to turn labels (command
// line flags, configuration files) into masks.
type Registry struct {
	mu      sync.RWMutex
	byLabel map[string]Topic
	byLevel map[int]Topic
}

// NewRegistry creates a registry holding topics.
func NewRegistry(topics ...Topic) (*Registry, error) {
	r := &Registry{
		byLabel: make(map[string]Topic),
		byLevel: make(map[int]Topic),
	}
	for _, t := range topics {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a topic to the registry. The topic needs a non-empty label,
// a real level, and must not reuse a registered label or level.
func (r *Registry) Register(t Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	label, ok := t.Label()
	if !ok || label == "" {
		return &RegistryError{
			Kind:    ErrorUnlabeled,
			Level:   t.Level(),
			Message: fmt.Sprintf("cannot register topic at level %d without a label", t.Level()),
		}
	}

	if t.IsZero() {
		return &RegistryError{
			Kind:    ErrorNoLevel,
			Label:   label,
			Level:   t.Level(),
			Message: fmt.Sprintf("cannot register topic %q without a level", label),
		}
	}

	if existing, exists := r.byLabel[label]; exists {
		return &RegistryError{
			Kind:    ErrorDuplicateLabel,
			Label:   label,
			Level:   t.Level(),
			Message: fmt.Sprintf("topic label already registered: %s (level %d)", label, existing.Level()),
		}
	}

	if existing, exists := r.byLevel[t.Level()]; exists {
		return &RegistryError{
			Kind:    ErrorDuplicateLevel,
			Label:   label,
			Level:   t.Level(),
			Message: fmt.Sprintf("topic level %d already registered as %s", t.Level(), existing.Name()),
		}
	}

	r.byLabel[label] = t
	r.byLevel[t.Level()] = t
	return nil
}

// MustRegister registers t and panics on failure. It returns t so that
// package-level topic variables can be declared and registered in one step.
func (r *Registry) MustRegister(t Topic) Topic {
	if err := r.Register(t); err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the topic registered under label.
func (r *Registry) Lookup(label string) (Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byLabel[label]
	return t, ok
}

// Parse turns a list of labels into a mask. An unknown label fails with a
// *RegistryError matching ErrUnknownTopic that lists the available labels.
func (r *Registry) Parse(labels []string) (Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Set{members: make(map[int]Topic, len(labels))}
	for _, label := range labels {
		t, ok := r.byLabel[label]
		if !ok {
			return Set{}, &RegistryError{
				Kind:  ErrorUnknownLabel,
				Label: label,
				Level: NoLevel,
				Message: fmt.Sprintf("unknown topic %q (available: %s)",
					label, strings.Join(r.labelsLocked(), ", ")),
			}
		}
		s.members[t.Level()] = t
	}
	return s, nil
}

// Topics returns the registered topics sorted by level.
func (r *Registry) Topics() []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.topicsLocked()
}

func (r *Registry) topicsLocked() []Topic {
	levels := make([]int, 0, len(r.byLevel))
	for level := range r.byLevel {
		levels = append(levels, level)
	}
	slices.Sort(levels)

	out := make([]Topic, 0, len(levels))
	for _, level := range levels {
		out = append(out, r.byLevel[level])
	}
	return out
}

// Labels returns the registered labels ordered by level.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.labelsLocked()
}

func (r *Registry) labelsLocked() []string {
	topics := r.topicsLocked()
	labels := make([]string, 0, len(topics))
	for _, t := range topics {
		labels = append(labels, t.Name())
	}
	return labels
}

// Mask returns a set holding every registered topic.
func (r *Registry) Mask() Set {
	return SetFromSlice(r.Topics())
}

// Len returns the number of registered topics.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byLabel)
}
