package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the pretty handler. The lipgloss renderer drops colors
// automatically when the output is not a terminal.
var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	levelStyle  = map[slog.Level]lipgloss.Style{
		slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

// prettyHandler renders records for humans: colored key=value pairs for
// [FormatText] or indented objects for [FormatJSON].
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	format Format
	attrs  []slog.Attr // pre-qualified with group prefix
	prefix string      // dot-joined open groups
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		format: format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs)+4)

	if !r.Time.IsZero() {
		attrs = append(attrs, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	attrs = append(attrs, h.replace(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			attrs = append(attrs, slog.String(
				slog.SourceKey, src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))
	attrs = append(attrs, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))

		return true
	})

	var buf bytes.Buffer

	switch h.format {
	case FormatJSON:
		if err := h.writeJSON(&buf, attrs); err != nil {
			return err
		}

	default:
		h.writeText(&buf, attrs)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)

	for _, a := range attrs {
		next.attrs = append(next.attrs, h.qualify(a))
	}

	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	if next.prefix != "" {
		next.prefix += "."
	}

	next.prefix += name

	return &next
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// qualify prefixes the attribute key with any open groups.
func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if h.prefix != "" {
		a.Key = h.prefix + "." + a.Key
	}

	return a
}

// flatten expands groups into dotted keys so that text and JSON output
// name every attribute the same way. A group with an empty key is inlined.
func flatten(prefix string, attrs []slog.Attr, out []slog.Attr) []slog.Attr {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		key := a.Key
		if prefix != "" && key != "" {
			key = prefix + "." + key
		}

		switch {
		case a.Value.Kind() == slog.KindGroup:
			if a.Key == "" {
				key = prefix
			}

			out = flatten(key, a.Value.Group(), out)

		case a.Key != "":
			a.Key = key
			out = append(out, a)
		}
	}

	return out
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, attrs []slog.Attr) {
	for _, a := range flatten("", attrs, nil) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(keyStyle.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(renderValue(a.Key, a.Value))
	}
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, attrs []slog.Attr) error {
	flat := flatten("", attrs, nil)
	obj := make(map[string]any, len(flat))

	for _, a := range flat {
		obj[a.Key] = nativeValue(a.Value)
	}

	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	buf.Write(data)

	return nil
}

// renderValue colors a value according to its kind.
func renderValue(key string, v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if key == slog.LevelKey {
			return renderLevel(s)
		}

		return stringStyle.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return numberStyle.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return trueStyle.Render("true")
		}

		return falseStyle.Render("false")

	case slog.KindDuration, slog.KindTime:
		return timeStyle.Render(v.String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			return renderLevel(strings.ToUpper(Level(level).String()))
		}

		return stringStyle.Render(fmt.Sprint(v.Any()))

	default:
		return stringStyle.Render(v.String())
	}
}

func renderLevel(name string) string {
	level := ParseLevel(name)

	style, ok := levelStyle[slog.Level(level)]
	if !ok {
		return name
	}

	return style.Render(name)
}

// nativeValue converts a slog.Value to a value encoding/json understands.
func nativeValue(v slog.Value) any {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindDuration, slog.KindTime:
		return v.String()

	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}

		return v.Any()

	default:
		return v.Any()
	}
}
