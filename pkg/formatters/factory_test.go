package formatters

import (
	"testing"

	"github.com/pkg/errors"
)

func TestFactory_NewFactory(t *testing.T) {
	f := NewFactory()

	if f == nil {
		t.Fatal("NewFactory() returned nil")
	}

	styles := f.Styles()
	want := []string{StyleBare, StyleCompact, StyleDebug}
	if len(styles) != len(want) {
		t.Fatalf("expected styles %v, got %v", want, styles)
	}
	for i := range want {
		if styles[i] != want[i] {
			t.Fatalf("expected styles %v, got %v", want, styles)
		}
	}
}

func TestFactory_Styles(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		style string
		want  string
	}{
		{style: StyleDebug, want: "debug-error: Bang!\n"},
		{style: StyleCompact, want: "error: Bang!\n"},
		{style: StyleBare, want: "Bang!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			formatter, err := f.CreateFormatter(tt.style)
			if err != nil {
				t.Fatalf("CreateFormatter() error = %v", err)
			}
			if got := string(formatter.Format(errTopic, "Bang!")); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFactory_Register(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		name      string
		styleName string
		wantErr   bool
	}{
		{name: "valid registration", styleName: "custom"},
		{name: "empty name", styleName: "", wantErr: true},
		{name: "override existing", styleName: StyleDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Register(tt.styleName, FormatOptions{Terminator: Text(";")})
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	opts, err := f.Options(StyleDebug)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if got := string(Render(info, opts, "x")); got != "x;" {
		t.Errorf("override not applied, got %q", got)
	}
}

func TestFactory_UnknownStyle(t *testing.T) {
	_, err := NewFactory().CreateFormatter("does-not-exist")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestDefaultFactory(t *testing.T) {
	formatter, err := CreateFormatter(StyleDebug)
	if err != nil {
		t.Fatalf("CreateFormatter() error = %v", err)
	}
	if got := string(formatter.Format(info, "hi")); got != "debug-info: hi\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDefaultFactory_Lookup(t *testing.T) {
	styles := Styles()
	if len(styles) < 3 {
		t.Fatalf("expected at least the builtin styles, got %v", styles)
	}

	opts, err := Options(StyleCompact)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if got := string(Render(errTopic, opts, "Bang!")); got != "error: Bang!\n" {
		t.Errorf("unexpected output %q", got)
	}
}
