package debugkit

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/wayneeseguin/debugkit/internal/metrics"
	"github.com/wayneeseguin/debugkit/internal/utils"
	"github.com/wayneeseguin/debugkit/pkg/formatters"
	"github.com/wayneeseguin/debugkit/pkg/topics"
	"github.com/wayneeseguin/debugkit/pkg/types"
)

// Version of the debugkit module
const Version = "0.0.1"

// Metrics is a snapshot of an emitter's counters
type Metrics = metrics.Metrics

// Emitter writes topic-tagged diagnostic messages to a sink when the topic
// is contained in the caller's mask.
type Emitter struct {
	mu        sync.Mutex
	sink      io.Writer
	config    Config
	formatter *formatters.TextFormatter
	metrics   *metrics.Collector
}

// New creates an emitter writing to sink.
// A nil sink discards every message without evaluating it. A typed nil,
// such as a nil *os.File, counts as nil.
//
// Parameters:
//   - sink: Destination for rendered messages
//   - opts: Functional options applied over the defaults
//
// Returns:
//   - *Emitter: The configured emitter
//
// Example:
//
//	e := debugkit.New(os.Stderr, debugkit.WithPrefix("app"))
//	e.Dbg(errTopic, mask, "Bang!") // "app-error: Bang!\n"
func New(sink io.Writer, opts ...Option) *Emitter {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if isNilWriter(sink) {
		sink = nil
	}

	return &Emitter{
		sink:      sink,
		config:    config,
		formatter: &formatters.TextFormatter{Options: config.Format},
		metrics:   metrics.NewCollector(),
	}
}

// Sink returns the writer the emitter writes to
func (e *Emitter) Sink() io.Writer {
	return e.sink
}

// FormatOptions returns the tokens used by the Dbg family
func (e *Emitter) FormatOptions() formatters.FormatOptions {
	return e.config.Format
}

// Metrics returns a snapshot of the emitter's counters
func (e *Emitter) Metrics() Metrics {
	return e.metrics.Snapshot()
}

// Enabled reports whether a message for topic would be written under mask.
func (e *Emitter) Enabled(topic topics.Topic, mask topics.Set) bool {
	return e.sink != nil && mask.Contains(topic)
}

// Dbg writes message when mask contains topic.
//
// Parameters:
//   - topic: The topic the message is tagged with
//   - mask: The set of enabled topics
//   - message: The message text
func (e *Emitter) Dbg(topic topics.Topic, mask topics.Set, message string) {
	if !e.admit(topic, mask) {
		return
	}
	e.write(topic, e.formatter.Format(topic, message))
}

// Dbgf formats and writes a message when mask contains topic.
// Formatting happens only after the mask check passes.
func (e *Emitter) Dbgf(topic topics.Topic, mask topics.Set, format string, args ...interface{}) {
	if !e.admit(topic, mask) {
		return
	}
	e.write(topic, e.formatter.Format(topic, fmt.Sprintf(format, args...)))
}

// DbgFn calls fn and writes its result when mask contains topic.
// fn is not called when the topic is filtered out.
//
// Example:
//
//	e.DbgFn(trace, mask, func() string { return expensiveDump(state) })
func (e *Emitter) DbgFn(topic topics.Topic, mask topics.Set, fn func() string) {
	if !e.admit(topic, mask) {
		return
	}
	e.write(topic, e.formatter.Format(topic, utils.Deferred(fn).String()))
}

// DbgEach checks each topic of list against mask, in order, and writes
// message once for every topic that passes.
func (e *Emitter) DbgEach(list []topics.Topic, mask topics.Set, message string) {
	e.each(list, mask, utils.Message(message))
}

// DbgEachf is DbgEach with a format string. The message is formatted at
// most once.
func (e *Emitter) DbgEachf(list []topics.Topic, mask topics.Set, format string, args ...interface{}) {
	e.each(list, mask, utils.Formatted(format, args...))
}

// DbgEachFn is DbgEach with a deferred message. fn is called at most once,
// and not at all when no topic passes.
func (e *Emitter) DbgEachFn(list []topics.Topic, mask topics.Set, fn func() string) {
	e.each(list, mask, utils.Deferred(fn))
}

func (e *Emitter) each(list []topics.Topic, mask topics.Set, message *utils.LazyMessage) {
	for _, topic := range list {
		if !e.admit(topic, mask) {
			continue
		}
		e.write(topic, e.formatter.Format(topic, message.String()))
	}
}

// Print writes message unconditionally, tagged with the catch-all topic.
func (e *Emitter) Print(message string) {
	e.Always(topics.All, message)
}

// Always writes message tagged with topic regardless of any mask.
func (e *Emitter) Always(topic topics.Topic, message string) {
	if e.sink == nil {
		return
	}
	e.write(topic, e.formatter.Format(topic, message))
}

// Alwaysf formats and writes a message tagged with topic regardless of any mask.
func (e *Emitter) Alwaysf(topic topics.Topic, format string, args ...interface{}) {
	if e.sink == nil {
		return
	}
	e.write(topic, e.formatter.Format(topic, fmt.Sprintf(format, args...)))
}

// Dlog writes a timestamped message unconditionally:
// "<timestamp> <message>\n". The configured format tokens are not used.
//
// Example:
//
//	e.Dlog("started") // "2026-10-18 09:30:15.123 started\n"
func (e *Emitter) Dlog(message string) {
	if e.sink == nil {
		return
	}
	opts := formatters.TimestampOptions(e.timestamp())
	e.write(topics.All, formatters.Render(topics.All, opts, message))
}

// Dlogf is Dlog with a format string
func (e *Emitter) Dlogf(format string, args ...interface{}) {
	if e.sink == nil {
		return
	}
	e.Dlog(fmt.Sprintf(format, args...))
}

// DlogTopic writes a timestamped message when mask contains topic:
// "<timestamp> [<label>] <message>\n".
func (e *Emitter) DlogTopic(topic topics.Topic, mask topics.Set, message string) {
	if !e.admit(topic, mask) {
		return
	}
	e.dlogTopic(topic, message)
}

// DlogTopicf is DlogTopic with a format string
func (e *Emitter) DlogTopicf(topic topics.Topic, mask topics.Set, format string, args ...interface{}) {
	if !e.admit(topic, mask) {
		return
	}
	e.dlogTopic(topic, fmt.Sprintf(format, args...))
}

// DlogTopicFn is DlogTopic with a deferred message
func (e *Emitter) DlogTopicFn(topic topics.Topic, mask topics.Set, fn func() string) {
	if !e.admit(topic, mask) {
		return
	}
	e.dlogTopic(topic, utils.Deferred(fn).String())
}

func (e *Emitter) dlogTopic(topic topics.Topic, message string) {
	prefix := formatters.LeveledPrefix(e.timestamp(), topic)
	e.write(topic, formatters.Render(topic, formatters.TimestampOptions(prefix), message))
}

func (e *Emitter) timestamp() string {
	return formatters.Timestamp(e.config.Clock(), e.config.TimestampFormat, e.config.Location)
}

// admit reports whether a message for topic should be built and written
func (e *Emitter) admit(topic topics.Topic, mask topics.Set) bool {
	if e.sink == nil {
		return false
	}
	if !mask.Contains(topic) {
		e.metrics.TrackSuppressed()
		return false
	}
	return true
}

// write hands data to the sink in a single call, then flushes when the sink
// supports it. Failures are reported to the error handler only.
func (e *Emitter) write(topic topics.Topic, data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	n, err := e.sink.Write(data)
	if err != nil {
		e.metrics.TrackWriteError()
		e.config.ErrorHandler(&SinkError{Operation: OperationWrite, Topic: topic, Err: err})
		return
	}
	e.metrics.TrackWrite(n, time.Since(start))
	e.metrics.TrackWritten(topic.Level())

	e.flush(topic)
}

func (e *Emitter) flush(topic topics.Topic) {
	switch sink := e.sink.(type) {
	case types.Flusher:
		if err := sink.Flush(); err != nil {
			e.metrics.TrackFlushError()
			e.config.ErrorHandler(&SinkError{Operation: OperationFlush, Topic: topic, Err: err})
		}
	case types.Syncer:
		// Standard streams are unbuffered and often not syncable.
		if sink == os.Stderr || sink == os.Stdout {
			return
		}
		if err := sink.Sync(); err != nil {
			e.metrics.TrackFlushError()
			e.config.ErrorHandler(&SinkError{Operation: OperationSync, Topic: topic, Err: err})
		}
	}
}

// isNilWriter reports whether w is nil or wraps a nil pointer or func.
func isNilWriter(w io.Writer) bool {
	if w == nil {
		return true
	}
	rv := reflect.ValueOf(w)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func:
		return rv.IsNil()
	}
	return false
}
