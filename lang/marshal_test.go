package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func sampleRecords() Records {
	return Parse(context.Background(), "1\n#UTC+1\n90m\nnope", 0)
}

func TestRecords_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	want := `[` +
		`{"line":1,"input":"1","offset":"UTC+0","kind":"timestamp","display":"1970-01-01 00:00:01+00:00","numeric":"1"},` +
		`{"line":2,"input":"#UTC+1","offset":"UTC+0","kind":"offset","display":"UTC+1","numeric":"UTC+1"},` +
		`{"line":3,"input":"90m","offset":"UTC+1","kind":"duration","display":"1h30m","numeric":"5400"},` +
		`{"line":4,"input":"nope","offset":"UTC+1","kind":"none","display":"...","numeric":"..."}` +
		`]`

	if got := string(data); got != want {
		t.Errorf("MarshalJSON mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestRecords_FormatJSON(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		check  func(string) bool
	}{
		{"compact", 0, func(s string) bool { return !strings.Contains(s, "\n  ") }},
		{"indented", 2, func(s string) bool { return strings.Contains(s, "\n    \"line\": 1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := sampleRecords().FormatJSON(context.Background(), &buf, tt.indent); err != nil {
				t.Fatal(err)
			}

			out := buf.String()
			if !strings.HasSuffix(out, "]\n") || !tt.check(out) {
				t.Errorf("unexpected output: %s", out)
			}

			var views []recordView
			if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			if len(views) != 4 {
				t.Errorf("len = %d, want 4", len(views))
			}
		})
	}
}

func TestRecords_FormatYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleRecords().FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "- line: 1\n") {
		t.Errorf("expected block sequence, got:\n%s", out)
	}

	for _, s := range []string{"line: 3", "kind: duration", "display: 1h30m", "5400", "input: nope"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %q in YAML, got:\n%s", s, out)
		}
	}

}

func TestRecords_FormatYAML_Flow(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleRecords().FormatYAML(context.Background(), &buf, 0); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("expected flow sequence, got:\n%s", buf.String())
	}
}

func TestRecords_FormatText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleRecords().FormatText(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	want := "1970-01-01 00:00:01+00:00\t1\n" +
		"UTC+1\tUTC+1\n" +
		"1h30m\t5400\n" +
		"...\t...\n"

	if got := buf.String(); got != want {
		t.Errorf("FormatText mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestRecords_FormatTable(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleRecords().FormatTable(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, s := range []string{"INPUT", "NUMERIC", "#UTC+1", "1970-01-01 00:00:01+00:00", "1h30m", "5400", "nope"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %q in table, got:\n%s", s, out)
		}
	}

	if got := strings.Count(out, "\n"); got < 7 {
		t.Errorf("expected header, separators and 4 rows, got %d lines:\n%s", got, out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecords_FormatErrors(t *testing.T) {
	ctx := context.Background()
	records := sampleRecords()

	tests := []struct {
		name   string
		format func() error
	}{
		{"json", func() error { return records.FormatJSON(ctx, failingWriter{}, 0) }},
		{"yaml", func() error { return records.FormatYAML(ctx, failingWriter{}, 2) }},
		{"text", func() error { return records.FormatText(ctx, failingWriter{}) }},
		{"table", func() error { return records.FormatTable(ctx, failingWriter{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format()
			if !errors.Is(err, ErrFormat) {
				t.Errorf("error = %v, want ErrFormat", err)
			}

			if err == nil || !strings.Contains(err.Error(), "disk full") {
				t.Errorf("error %v does not carry the cause", err)
			}
		})
	}
}
