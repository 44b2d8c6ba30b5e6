package formatters

import (
	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// Formatter renders a message tagged with a topic into output bytes
type Formatter interface {
	// Format renders message for topic
	Format(topic topics.Topic, message string) []byte
}

// Compile-time interface compliance check
var _ Formatter = (*TextFormatter)(nil)
