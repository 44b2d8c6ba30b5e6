package backends

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidURI is returned by Open for destinations it cannot interpret
var ErrInvalidURI = errors.New("invalid destination URI")

// streamSink adapts a standard stream. Close leaves the stream open.
type streamSink struct {
	io.Writer
}

func (s *streamSink) Flush() error { return nil }
func (s *streamSink) Close() error { return nil }

// Open returns the sink named by uri:
//
//	stderr, "" or -     standard error
//	stdout              standard output
//	discard             drop everything
//	nats://host:port/s  publish to subject s (DefaultSubject when omitted)
//	file:///p or p      append to file p
func Open(uri string) (Sink, error) {
	switch uri {
	case "", "-", "stderr":
		return &streamSink{Writer: os.Stderr}, nil
	case "stdout":
		return &streamSink{Writer: os.Stdout}, nil
	case "discard":
		return &streamSink{Writer: io.Discard}, nil
	}

	if !strings.Contains(uri, "://") {
		return NewFileSink(uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidURI, "%q: %v", uri, err)
	}

	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return nil, errors.Wrapf(ErrInvalidURI, "%q: missing path", uri)
		}
		return NewFileSink(u.Path)
	case "nats":
		if u.Host == "" {
			return nil, errors.Wrapf(ErrInvalidURI, "%q: missing host", uri)
		}
		subject := strings.TrimPrefix(u.Path, "/")
		if subject == "" {
			subject = DefaultSubject
		}
		server := url.URL{Scheme: "nats", Host: u.Host, User: u.User}
		return DialNATS(server.String(), subject)
	default:
		return nil, errors.Wrapf(ErrInvalidURI, "%q: unsupported scheme %q", uri, u.Scheme)
	}
}
