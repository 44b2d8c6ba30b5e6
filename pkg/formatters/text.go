package formatters

import (
	"strconv"
	"strings"

	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// TextFormatter renders topic-tagged messages as plain text
type TextFormatter struct {
	Options FormatOptions
}

// NewTextFormatter creates a new text formatter with default options
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		Options: DefaultFormatOptions(),
	}
}

// Format renders message for topic using the formatter options
func (f *TextFormatter) Format(topic topics.Topic, message string) []byte {
	return Render(topic, f.Options, message)
}

// Render composes prefix, topic label, separators, message and terminator,
// in that order:
//
//  1. the prefix, when present and non-empty;
//  2. when the label separator is present and the topic has something to
//     show, the separator followed by the label, or by the decimal level for
//     an unlabeled topic. A topic with an empty label shows nothing, and an
//     absent separator suppresses the label entirely;
//  3. the message separator, when present, even for an empty message;
//  4. the message, when non-empty;
//  5. the terminator, when present.
//
// The result is the UTF-8 encoding of the concatenation, with no escaping or
// truncation.
func Render(topic topics.Topic, opts FormatOptions, message string) []byte {
	var result strings.Builder

	if prefix, ok := opts.Prefix.Value(); ok && prefix != "" {
		result.WriteString(prefix)
	}

	if sep, ok := opts.LabelSeparator.Value(); ok {
		if token, show := labelToken(topic); show {
			result.WriteString(sep)
			result.WriteString(token)
		}
	}

	if sep, ok := opts.MessageSeparator.Value(); ok {
		result.WriteString(sep)
	}

	if message != "" {
		result.WriteString(message)
	}

	if term, ok := opts.Terminator.Value(); ok {
		result.WriteString(term)
	}

	return []byte(result.String())
}

// labelToken returns the label-or-level text for topic and whether there is
// anything to show.
func labelToken(topic topics.Topic) (string, bool) {
	if label, ok := topic.Label(); ok {
		return label, label != ""
	}
	return strconv.Itoa(topic.Level()), true
}

// LeveledPrefix returns the prefix used by timestamped leveled output:
// "<timestamp> [<label>]", or just the timestamp when the topic has an
// empty label.
func LeveledPrefix(timestamp string, topic topics.Topic) string {
	token, show := labelToken(topic)
	if !show {
		return timestamp
	}
	return timestamp + " [" + token + "]"
}

// AppendFormat appends the rendered message to dst and returns the extended buffer
func (f *TextFormatter) AppendFormat(dst []byte, topic topics.Topic, message string) []byte {
	return append(dst, Render(topic, f.Options, message)...)
}
