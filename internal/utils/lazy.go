package utils

import (
	"fmt"
	"sync"
)

// LazyMessage represents a message that delays evaluation until it's actually needed.
// Messages filtered out by the topic mask are never built, and a message
// emitted to several topics is built at most once.
type LazyMessage struct {
	Format string
	Args   []interface{}
	Fn     func() string

	// Lazy evaluation fields
	formatted     string
	formattedOnce sync.Once
}

// Message wraps an already built string.
func Message(s string) *LazyMessage {
	lm := &LazyMessage{formatted: s}
	lm.formattedOnce.Do(func() {})
	return lm
}

// Formatted delays fmt.Sprintf(format, args...) until String is called.
// The format is always interpreted, even without args, so "%%" yields "%".
func Formatted(format string, args ...interface{}) *LazyMessage {
	return &LazyMessage{Format: format, Args: args}
}

// Deferred delays calling fn until String is called.
// A nil fn evaluates to the empty string.
func Deferred(fn func() string) *LazyMessage {
	return &LazyMessage{Fn: fn}
}

// String evaluates the message lazily.
// The evaluation is performed only once and cached for subsequent calls.
// This method is thread-safe due to sync.Once.
//
// Returns:
//   - string: The evaluated message
func (lm *LazyMessage) String() string {
	lm.formattedOnce.Do(func() {
		if lm.Fn != nil {
			lm.formatted = lm.Fn()
			return
		}
		lm.formatted = fmt.Sprintf(lm.Format, lm.Args...)
	})
	return lm.formatted
}
