package debugkit

import (
	"fmt"
	"os"

	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// Sink operations reported through SinkError
const (
	OperationWrite = "write"
	OperationFlush = "flush"
	OperationSync  = "sync"
)

// SinkError represents a failure of the sink while emitting a message.
// Emission never returns errors; they are handed to the emitter's ErrorHandler.
type SinkError struct {
	Operation string       // The sink operation that failed
	Topic     topics.Topic // The topic of the message being emitted
	Err       error        // The underlying error
}

// Error implements the error interface
func (e *SinkError) Error() string {
	return fmt.Sprintf("debugkit: %s failed for topic %s: %v", e.Operation, e.Topic, e.Err)
}

// Unwrap returns the underlying error
func (e *SinkError) Unwrap() error {
	return e.Err
}

// ErrorHandler defines a function type for handling sink errors
type ErrorHandler func(err *SinkError)

// SilentErrorHandler discards all errors. It is the default.
var SilentErrorHandler ErrorHandler = func(err *SinkError) {}

// StderrErrorHandler writes errors to stderr
var StderrErrorHandler ErrorHandler = func(err *SinkError) {
	fmt.Fprintln(os.Stderr, err.Error())
}
