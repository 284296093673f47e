package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	// must not panic
	logger.Info("nothing")
	logger.With(slog.String("k", "v")).Error("still nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected zero logger level %v, got %v", DefaultLevel, logger.Level())
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		log    func(Logger)
		logged bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("msg") }, true},
		{"info at error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("msg") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_JSON_LevelNames(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"))
	logger.Trace("deep", slog.Int("line", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if record["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", record["level"])
	}

	if _, ok := record["time"]; ok {
		t.Errorf("expected no time attribute, got %v", record["time"])
	}

	if record["line"] != float64(3) {
		t.Errorf("expected line 3, got %v", record["line"])
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithFormat(FormatText))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got: %s", buf.String())
	}
}

func TestLogger_Wrap_KeepsBaseConfig(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatText), WithLevel(LevelWarn))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatText {
		t.Errorf("expected wrapped logger to keep text format, got %v", wrapped.Format())
	}

	if wrapped.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", wrapped.Level())
	}

	if base.Level() != LevelWarn {
		t.Errorf("expected base level unchanged, got %v", base.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug message, got: %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText)).
		With(slog.String("component", "lang"))
	logger.Info("hello")

	if !strings.Contains(buf.String(), "component=lang") {
		t.Errorf("expected attribute in output, got: %s", buf.String())
	}
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		contains []string
	}{
		{"text", FormatText, []string{"msg=", "hello", "n=", "7", "group.inner=", "x"}},
		{"json", FormatJSON, []string{"\n  \"msg\": \"hello\"", "\"n\": 7", "\"group.inner\": \"x\""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithFormat(tt.format), WithPretty(true), WithTimeLayout(""))
			logger.Info("hello",
				slog.Int("n", 7),
				slog.Group("group", slog.String("inner", "x")),
			)

			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("expected %q in output, got: %s", s, buf.String())
				}
			}
		})
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf safeBuffer

	logger := Make(&buf, WithFormat(FormatText))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(slog.Int("worker", i)).Info("tick")
			_ = logger.Wrap(WithLevel(LevelDebug)).Level()
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "tick"); got != 16 {
		t.Errorf("expected 16 messages, got %d", got)
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestLogger_PrettyJSONFlattensGroups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(true), WithTimeLayout(""))
	logger.Info("hello",
		slog.Group("outer",
			slog.String("a", "1"),
			slog.Group("inner", slog.Int("b", 2)),
		),
		slog.Group("", slog.String("inlined", "y")),
	)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	want := map[string]any{"outer.a": "1", "outer.inner.b": float64(2), "inlined": "y"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %v, want %v", k, got[k], v)
		}
	}

	if _, ok := got["outer"]; ok {
		t.Errorf("group was nested: %s", buf.String())
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	attrs := flatten("", []slog.Attr{
		slog.String("", "dropped"),
		slog.Group("g", slog.Group("h", slog.Bool("ok", true))),
		slog.Group("", slog.Int("n", 1)),
	}, nil)

	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key
	}

	if got, want := strings.Join(keys, ","), "g.h.ok,n"; got != want {
		t.Errorf("flatten keys = %q, want %q", got, want)
	}
}
