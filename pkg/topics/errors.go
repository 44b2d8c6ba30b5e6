package topics

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors that can be compared with errors.Is()
var (
	// ErrLevelOutOfRange is returned when a topic level is outside [0, Width-1]
	ErrLevelOutOfRange = errors.New("topic level out of range")

	// ErrUnknownTopic is returned when a label is not registered
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrDuplicateTopic is returned when a label or level is registered twice
	ErrDuplicateTopic = errors.New("duplicate topic")

	// ErrInvalidTopic is returned when a topic cannot be registered
	ErrInvalidTopic = errors.New("invalid topic")
)

// LevelError reports a topic level outside the 64-slot space.
type LevelError struct {
	Level int
	Err   error // The underlying bitflag error, if any
}

// Error implements the error interface
func (e *LevelError) Error() string {
	return fmt.Sprintf("invalid topic level %d: must be in range 0...%d", e.Level, Width-1)
}

// Is reports whether target is ErrLevelOutOfRange
func (e *LevelError) Is(target error) bool {
	return target == ErrLevelOutOfRange
}

// Unwrap returns the underlying error
func (e *LevelError) Unwrap() error {
	return e.Err
}

// RegistryErrorKind classifies registry failures
type RegistryErrorKind string

const (
	ErrorUnknownLabel   RegistryErrorKind = "unknown_label"
	ErrorDuplicateLabel RegistryErrorKind = "duplicate_label"
	ErrorDuplicateLevel RegistryErrorKind = "duplicate_level"
	ErrorUnlabeled      RegistryErrorKind = "unlabeled"
	ErrorNoLevel        RegistryErrorKind = "no_level"
)

// RegistryError represents structured errors raised by a Registry
type RegistryError struct {
	Kind    RegistryErrorKind
	Label   string
	Level   int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// Is maps the error kind onto the package sentinels
func (e *RegistryError) Is(target error) bool {
	switch e.Kind {
	case ErrorUnknownLabel:
		return target == ErrUnknownTopic
	case ErrorDuplicateLabel, ErrorDuplicateLevel:
		return target == ErrDuplicateTopic
	case ErrorUnlabeled, ErrorNoLevel:
		return target == ErrInvalidTopic
	}
	return false
}
