package formatters

import (
	"time"
)

// Token is a piece of output that may be absent. Omit means "leave it out
// entirely"; Text("") means "present, contributes nothing". The difference
// matters for the label separator, whose presence decides whether the topic
// label is rendered at all.
type Token struct {
	value string
	set   bool
}

// Omit is the absent token.
var Omit = Token{}

// Text returns a present token holding s.
func Text(s string) Token {
	return Token{value: s, set: true}
}

// Value returns the token text and whether the token is present.
func (t Token) Value() (string, bool) {
	return t.value, t.set
}

// IsSet reports whether the token is present.
func (t Token) IsSet() bool {
	return t.set
}

// String returns the token text, or "" when absent.
func (t Token) String() string {
	return t.value
}

// FormatOptions controls how a message is composed
type FormatOptions struct {
	Prefix           Token
	LabelSeparator   Token
	MessageSeparator Token
	Terminator       Token
}

// Defaults used by DefaultFormatOptions
const (
	DefaultPrefix           = "debug"
	DefaultLabelSeparator   = "-"
	DefaultMessageSeparator = ": "
	DefaultTerminator       = "\n"
)

// DefaultFormatOptions returns default formatting options, which render
// "debug-error: Bang!\n".
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Prefix:           Text(DefaultPrefix),
		LabelSeparator:   Text(DefaultLabelSeparator),
		MessageSeparator: Text(DefaultMessageSeparator),
		Terminator:       Text(DefaultTerminator),
	}
}

// DefaultTimestampFormat is the layout used for timestamped output.
const DefaultTimestampFormat = "2006-01-02 15:04:05.000"

// TimestampOptions returns the options used for timestamped output: the
// given prefix, no label separator, a single space before the message and a
// newline terminator.
func TimestampOptions(prefix string) FormatOptions {
	return FormatOptions{
		Prefix:           Text(prefix),
		LabelSeparator:   Omit,
		MessageSeparator: Text(" "),
		Terminator:       Text(DefaultTerminator),
	}
}

// Timestamp formats t with layout in loc. An empty layout selects
// DefaultTimestampFormat and a nil location keeps t's own.
func Timestamp(t time.Time, layout string, loc *time.Location) string {
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
