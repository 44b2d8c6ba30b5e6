package backends

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// DefaultSubject is used when a nats:// destination names no subject
const DefaultSubject = "debug"

// ErrEmptySubject is returned when a NATS sink is created without a subject
var ErrEmptySubject = errors.New("nats subject cannot be empty")

// Publisher publishes messages to a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
	Flush() error
}

// NATSSink publishes each message to a NATS subject
type NATSSink struct {
	mu      sync.Mutex
	pub     Publisher
	subject string
	closed  bool
	stats   SinkStats
}

// NewNATSSink creates a sink publishing to subject through pub
func NewNATSSink(pub Publisher, subject string) (*NATSSink, error) {
	if pub == nil {
		return nil, errors.New("nats publisher cannot be nil")
	}
	if subject == "" {
		return nil, ErrEmptySubject
	}
	return &NATSSink{
		pub:     pub,
		subject: subject,
		stats:   SinkStats{Destination: subject},
	}, nil
}

// DialNATS connects to the NATS server at url and returns a sink publishing
// to subject. The connection is owned by the sink and closed by Close.
//
// Parameters:
//   - url: Server URL, e.g. "nats://127.0.0.1:4222"
//   - subject: Subject every message is published to
//   - opts: Extra connection options appended after the defaults
//
// Example:
//
//	sink, err := backends.DialNATS(nats.DefaultURL, "app.debug")
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//	e := debugkit.New(sink)
func DialNATS(url, subject string, opts ...nats.Option) (*NATSSink, error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}

	options := append([]nats.Option{
		nats.Name("debugkit"),
		nats.Timeout(2 * time.Second),
	}, opts...)

	conn, err := nats.Connect(url, options...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to NATS")
	}
	return NewNATSSink(conn, subject)
}

// Write publishes one message
func (n *NATSSink) Write(p []byte) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return 0, ErrSinkClosed
	}
	if err := n.pub.Publish(n.subject, p); err != nil {
		n.stats.ErrorCount++
		return 0, errors.Wrap(err, "failed to publish")
	}

	n.stats.WriteCount++
	n.stats.BytesWritten += uint64(len(p))
	n.stats.LastWrite = time.Now()
	return len(p), nil
}

// Flush waits until the server has processed all published messages
func (n *NATSSink) Flush() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrSinkClosed
	}
	return n.pub.Flush()
}

// Close flushes pending messages and closes the publisher if it can be closed
func (n *NATSSink) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	err := n.pub.Flush()
	if c, ok := n.pub.(interface{ Close() }); ok {
		c.Close()
	}
	if err != nil {
		return errors.Wrap(err, "flush on close")
	}
	return nil
}

// Subject returns the subject messages are published to
func (n *NATSSink) Subject() string {
	return n.subject
}

// Stats returns sink statistics
func (n *NATSSink) Stats() SinkStats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stats
}
