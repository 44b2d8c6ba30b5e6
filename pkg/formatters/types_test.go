package formatters

import (
	"testing"
	"time"
)

func TestDefaultFormatOptions(t *testing.T) {
	opts := DefaultFormatOptions()

	checks := []struct {
		name  string
		token Token
		want  string
	}{
		{name: "prefix", token: opts.Prefix, want: "debug"},
		{name: "label separator", token: opts.LabelSeparator, want: "-"},
		{name: "message separator", token: opts.MessageSeparator, want: ": "},
		{name: "terminator", token: opts.Terminator, want: "\n"},
	}

	for _, c := range checks {
		value, ok := c.token.Value()
		if !ok {
			t.Errorf("expected %s to be set", c.name)
		}
		if value != c.want {
			t.Errorf("expected %s %q, got %q", c.name, c.want, value)
		}
	}
}

func TestToken(t *testing.T) {
	if Omit.IsSet() {
		t.Error("Omit should not be set")
	}
	var zero Token
	if zero != Omit {
		t.Error("zero Token should equal Omit")
	}

	empty := Text("")
	if !empty.IsSet() {
		t.Error("Text(\"\") should be set")
	}
	if empty == Omit {
		t.Error("empty text must differ from Omit")
	}
	if Text("x").String() != "x" || Omit.String() != "" {
		t.Error("unexpected String output")
	}
}

func TestTimestampOptions(t *testing.T) {
	opts := TimestampOptions("2026-01-02")
	if opts.LabelSeparator.IsSet() {
		t.Error("timestamped output must not use a label separator")
	}
	got := string(Render(info, opts, "hello"))
	if got != "2026-01-02 hello\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 30, 15, 123000000, time.UTC)

	if got := Timestamp(ts, "", nil); got != "2026-10-18 09:30:15.123" {
		t.Errorf("unexpected default timestamp %q", got)
	}

	if got := Timestamp(ts, time.RFC3339, nil); got != "2026-10-18T09:30:15Z" {
		t.Errorf("unexpected RFC3339 timestamp %q", got)
	}

	loc := time.FixedZone("UTC+2", 2*60*60)
	if got := Timestamp(ts, "15:04", loc); got != "11:30" {
		t.Errorf("unexpected zoned timestamp %q", got)
	}
}
