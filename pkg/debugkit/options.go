package debugkit

import (
	"time"

	"github.com/wayneeseguin/debugkit/pkg/formatters"
)

// Config holds the emitter settings applied by options
type Config struct {
	Format          formatters.FormatOptions
	TimestampFormat string
	Location        *time.Location
	Clock           func() time.Time
	ErrorHandler    ErrorHandler
}

// Option is a functional option for configuring an Emitter
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Format:          formatters.DefaultFormatOptions(),
		TimestampFormat: formatters.DefaultTimestampFormat,
		Clock:           time.Now,
		ErrorHandler:    SilentErrorHandler,
	}
}

// WithFormatOptions replaces all four format tokens at once
func WithFormatOptions(opts formatters.FormatOptions) Option {
	return func(c *Config) {
		c.Format = opts
	}
}

// WithPrefix sets the text written at the start of every message
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		c.Format.Prefix = formatters.Text(prefix)
	}
}

// WithoutPrefix omits the prefix
func WithoutPrefix() Option {
	return func(c *Config) {
		c.Format.Prefix = formatters.Omit
	}
}

// WithLabelSeparator sets the text written between the prefix and the topic label
func WithLabelSeparator(sep string) Option {
	return func(c *Config) {
		c.Format.LabelSeparator = formatters.Text(sep)
	}
}

// WithoutLabelSeparator omits both the label separator and the topic label
func WithoutLabelSeparator() Option {
	return func(c *Config) {
		c.Format.LabelSeparator = formatters.Omit
	}
}

// WithMessageSeparator sets the text written before the message
func WithMessageSeparator(sep string) Option {
	return func(c *Config) {
		c.Format.MessageSeparator = formatters.Text(sep)
	}
}

// WithoutMessageSeparator omits the message separator
func WithoutMessageSeparator() Option {
	return func(c *Config) {
		c.Format.MessageSeparator = formatters.Omit
	}
}

// WithTerminator sets the text written after the message
func WithTerminator(term string) Option {
	return func(c *Config) {
		c.Format.Terminator = formatters.Text(term)
	}
}

// WithoutTerminator omits the terminator
func WithoutTerminator() Option {
	return func(c *Config) {
		c.Format.Terminator = formatters.Omit
	}
}

// WithTimestampFormat sets the time layout used by the Dlog family.
// An empty layout restores the default.
func WithTimestampFormat(layout string) Option {
	return func(c *Config) {
		if layout == "" {
			layout = formatters.DefaultTimestampFormat
		}
		c.TimestampFormat = layout
	}
}

// WithLocation sets the time zone used for timestamps
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		c.Location = loc
	}
}

// WithClock sets the time source used for timestamps
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		if clock == nil {
			clock = time.Now
		}
		c.Clock = clock
	}
}

// WithErrorHandler sets the handler receiving sink errors. A nil handler
// discards them.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *Config) {
		if handler == nil {
			handler = SilentErrorHandler
		}
		c.ErrorHandler = handler
	}
}
