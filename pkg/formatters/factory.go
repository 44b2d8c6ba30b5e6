package formatters

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Style names registered by NewFactory
const (
	StyleDebug   = "debug"   // "debug-error: Bang!\n"
	StyleCompact = "compact" // "error: Bang!\n"
	StyleBare    = "bare"    // "Bang!\n"
)

// ErrUnknownStyle is returned when a style name is not registered
var ErrUnknownStyle = errors.New("unknown format style")

// Factory maps style names to format options
type Factory struct {
	mu     sync.RWMutex
	styles map[string]FormatOptions
}

// NewFactory creates a new factory with the default styles registered
func NewFactory() *Factory {
	f := &Factory{
		styles: make(map[string]FormatOptions),
	}

	f.styles[StyleDebug] = DefaultFormatOptions()
	f.styles[StyleCompact] = FormatOptions{
		Prefix:           Omit,
		LabelSeparator:   Text(""),
		MessageSeparator: Text(DefaultMessageSeparator),
		Terminator:       Text(DefaultTerminator),
	}
	f.styles[StyleBare] = FormatOptions{
		Prefix:           Omit,
		LabelSeparator:   Omit,
		MessageSeparator: Omit,
		Terminator:       Text(DefaultTerminator),
	}

	return f
}

// Register adds or replaces a named style
func (f *Factory) Register(name string, opts FormatOptions) error {
	if name == "" {
		return errors.New("style name cannot be empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.styles[name] = opts
	return nil
}

// Options returns the format options registered under name
func (f *Factory) Options(name string) (FormatOptions, error) {
	f.mu.RLock()
	opts, exists := f.styles[name]
	f.mu.RUnlock()

	if !exists {
		return FormatOptions{}, errors.Wrapf(ErrUnknownStyle, "style %q", name)
	}
	return opts, nil
}

// CreateFormatter returns a text formatter using the named style
func (f *Factory) CreateFormatter(name string) (*TextFormatter, error) {
	opts, err := f.Options(name)
	if err != nil {
		return nil, err
	}
	return &TextFormatter{Options: opts}, nil
}

// Styles returns the registered style names in sorted order
func (f *Factory) Styles() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.styles))
	for name := range f.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFactory is the global style factory
var DefaultFactory = NewFactory()

// Register registers a style with the default factory
func Register(name string, opts FormatOptions) error {
	return DefaultFactory.Register(name, opts)
}

// CreateFormatter creates a formatter using the default factory
func CreateFormatter(name string) (*TextFormatter, error) {
	return DefaultFactory.CreateFormatter(name)
}

// Options returns the options of a style in the default factory
func Options(name string) (FormatOptions, error) {
	return DefaultFactory.Options(name)
}

// Styles lists the styles of the default factory
func Styles() []string {
	return DefaultFactory.Styles()
}
