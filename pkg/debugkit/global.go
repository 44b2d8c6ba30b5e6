package debugkit

import (
	"os"
	"sync/atomic"

	"github.com/wayneeseguin/debugkit/pkg/topics"
)

var defaultEmitter atomic.Pointer[Emitter]

func init() {
	defaultEmitter.Store(New(os.Stderr))
}

// Default returns the emitter used by the package-level functions.
// It writes to standard error with the default format.
func Default() *Emitter {
	return defaultEmitter.Load()
}

// SetDefault replaces the emitter used by the package-level functions.
// A nil emitter restores a standard error emitter.
func SetDefault(e *Emitter) {
	if e == nil {
		e = New(os.Stderr)
	}
	defaultEmitter.Store(e)
}

// Dbg writes message to the default emitter when mask contains topic
func Dbg(topic topics.Topic, mask topics.Set, message string) {
	Default().Dbg(topic, mask, message)
}

// Dbgf formats and writes to the default emitter when mask contains topic
func Dbgf(topic topics.Topic, mask topics.Set, format string, args ...interface{}) {
	Default().Dbgf(topic, mask, format, args...)
}

// DbgFn writes fn's result to the default emitter when mask contains topic
func DbgFn(topic topics.Topic, mask topics.Set, fn func() string) {
	Default().DbgFn(topic, mask, fn)
}

// DbgEach writes message to the default emitter once per topic of list contained in mask
func DbgEach(list []topics.Topic, mask topics.Set, message string) {
	Default().DbgEach(list, mask, message)
}

// Print writes message to the default emitter with the catch-all topic
func Print(message string) {
	Default().Print(message)
}

// Always writes message to the default emitter regardless of any mask
func Always(topic topics.Topic, message string) {
	Default().Always(topic, message)
}

// Dlog writes a timestamped message to the default emitter
func Dlog(message string) {
	Default().Dlog(message)
}

// DlogTopic writes a timestamped, labeled message to the default emitter when mask contains topic
func DlogTopic(topic topics.Topic, mask topics.Set, message string) {
	Default().DlogTopic(topic, mask, message)
}
