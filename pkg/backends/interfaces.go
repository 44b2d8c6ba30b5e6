package backends

import (
	"io"
	"time"
)

// Sink is a destination for rendered debug messages. Each Write carries
// exactly one message.
type Sink interface {
	io.Writer

	// Flush pushes any data held by the sink downstream
	Flush() error

	// Close releases the sink. Standard streams are left open.
	Close() error
}

// SinkStats represents statistics for a sink
type SinkStats struct {
	Destination  string
	WriteCount   uint64
	BytesWritten uint64
	ErrorCount   uint64
	LastWrite    time.Time
}

// Compile-time interface compliance checks
var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*NATSSink)(nil)
	_ Sink = (*streamSink)(nil)
)
