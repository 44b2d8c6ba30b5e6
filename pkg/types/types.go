package types

import (
	"fmt"
)

// DecodeError reports a value read from an external representation that
// violates the invariants of the type being decoded. It always names the
// offending field and value so callers can tell corrupted input apart from
// a generic parse failure.
type DecodeError struct {
	Type  string      // The type being decoded, e.g. "bitflag.Flag" or "topics.Topic"
	Field string      // The wire field that failed validation
	Value interface{} // The offending value as it was read
	Err   error       // The underlying validation error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: invalid %s %v: %v", e.Type, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("decode %s: invalid %s %v", e.Type, e.Field, e.Value)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Flusher is implemented by sinks that buffer data and can push it downstream.
type Flusher interface {
	// Flush ensures all buffered data is written
	Flush() error
}

// Syncer is implemented by sinks backed by a file descriptor, such as *os.File.
type Syncer interface {
	// Sync commits the current contents to stable storage
	Sync() error
}
