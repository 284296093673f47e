package edit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/utcalc/lang"
)

const (
	defaultWidth  = 100
	defaultHeight = 20
	maxLines      = 999
	helpText      = "tab complete • shift+tab next • ctrl+y copy • esc quit"
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	lineNumberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	offsetStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	noneStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
	resultsStyle       = lipgloss.NewStyle().PaddingLeft(2)
)

// tickMsg asks the model to refresh "now".
type tickMsg time.Time

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	lines int
	err   error
}

// model is the Bubble Tea model for the editor.
type model struct {
	ctxFunc  func() context.Context
	cfg      config
	area     textarea.Model
	records  lang.Records
	memo     *memo
	now      int64
	matches  fuzzy.Matches
	word     int // length in runes of the word being completed
	selected int
	status   string
	failed   bool // whether status reports an error
	width    int
	height   int
	quitting bool
}

// Run starts an interactive session editing document. Every line is
// re-evaluated on each change and "now" follows the configured clock.
func Run(ctx context.Context, document string, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "edit start",
		slog.Int("bytes", len(document)),
	)

	popts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if cfg.input != nil {
		popts = append(popts, tea.WithInput(cfg.input))
	}

	if cfg.output != nil {
		popts = append(popts, tea.WithOutput(cfg.output))
	}

	final, err := tea.NewProgram(newModel(ctx, document, cfg), popts...).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(model); ok {
		cfg.logger.DebugContext(ctx, "edit done",
			slog.Int("lines", len(m.records)),
			slog.Int("failed", m.records.Failed()),
		)
	}

	return nil
}

func newModel(ctx context.Context, document string, cfg config) model {
	ta := textarea.New()
	ta.Placeholder = "now + 1h"
	ta.ShowLineNumbers = true
	ta.MaxHeight = maxLines
	ta.Focus()

	m := model{
		ctxFunc: func() context.Context { return ctx },
		cfg:     cfg,
		area:    ta,
		memo:    newMemo(memoSize),
		now:     cfg.clock(),
	}

	m.resize(defaultWidth, defaultHeight)
	m.area.SetValue(document)
	m.evaluate()

	return m
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.cfg.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case tickMsg:
		if now := m.cfg.clock(); now != m.now {
			m.now = now
			m.evaluate()
		}

		return m, m.tick()

	case copiedMsg:
		if msg.err != nil {
			m.status, m.failed = "copy failed: "+msg.err.Error(), true

			m.cfg.logger.WarnContext(m.ctxFunc(), "edit copy failed",
				slog.Any("error", msg.err),
			)
		} else {
			m.status, m.failed = fmt.Sprintf("copied %d results", msg.lines), false
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.area, cmd = m.area.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.cfg.logger.TraceContext(m.ctxFunc(), "edit keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlY:
		return m, m.copy()

	case tea.KeyTab:
		if len(m.matches) > 0 {
			m.accept(m.matches[m.selected].Str)
		}

		return m, nil

	case tea.KeyShiftTab:
		if len(m.matches) > 0 {
			m.selected = (m.selected + 1) % len(m.matches)
		}

		return m, nil
	}

	before := m.area.Value()

	var cmd tea.Cmd

	m.area, cmd = m.area.Update(msg)

	if m.area.Value() != before {
		m.status = ""
		m.evaluate()
	} else {
		m.refreshMatches()
	}

	return m, cmd
}

// accept replaces the word being completed with candidate.
func (m *model) accept(candidate string) {
	for range m.word {
		m.area, _ = m.area.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}

	m.area.InsertString(candidate)
	m.evaluate()
}

func (m model) copy() tea.Cmd {
	var b strings.Builder

	_ = m.records.FormatText(m.ctxFunc(), &b)

	text, lines, copyFn := b.String(), len(m.records), m.cfg.copy

	return func() tea.Msg {
		return copiedMsg{lines: lines, err: copyFn(text)}
	}
}

// evaluate re-parses the whole document, unless it was already evaluated at
// the current "now", and refreshes completion.
func (m *model) evaluate() {
	document := m.area.Value()

	if rs, ok := m.memo.get(document, m.now); ok {
		m.records = rs
	} else {
		m.records = lang.Parse(
			m.ctxFunc(),
			document,
			m.now,
			lang.WithLogger(m.cfg.logger.With(slog.String("command", "edit"))),
		)
		m.memo.put(document, m.now, m.records)
	}

	m.refreshMatches()
}

// cursor returns the 0-based row and the rune column of the cursor.
func (m model) cursor() (int, int) {
	info := m.area.LineInfo()

	return m.area.Line(), info.StartColumn + info.ColumnOffset
}

func (m *model) refreshMatches() {
	row, col := m.cursor()

	lines := strings.Split(m.area.Value(), "\n")

	var line []rune
	if row < len(lines) {
		line = []rune(lines[row])
	}

	word, n := currentWord(line, col)

	m.matches, m.word = complete(word, row), n
	if m.selected >= len(m.matches) {
		m.selected = 0
	}
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height

	m.area.SetWidth(max(width/2, 20))
	m.area.SetHeight(max(height-4, 3))
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.area.View(),
		resultsStyle.Render(m.results()),
	))
	b.WriteString("\n")
	b.WriteString(renderCandidateBar(m.matches, m.selected, m.width))
	b.WriteString("\n")

	switch {
	case m.status == "":
		b.WriteString(hintStyle.Render(helpText))
	case m.failed:
		b.WriteString(errorStyle.Render(m.status))
	default:
		b.WriteString(resultStyle.Render(m.status))
	}

	return b.String()
}

func (m model) header() string {
	row, _ := m.cursor()

	offset := lang.UTC
	if row < len(m.records) {
		offset = m.records[row].Offset
	}

	now := lang.Record{Offset: offset, Expression: lang.NewTimestamp(m.now)}

	return titleStyle.Render("utcalc") + "  " +
		hintStyle.Render("now ") + now.Display() + "  " +
		offsetStyle.Render(offset.String())
}

// results renders one row per record: line number, display and numeric
// projections.
func (m model) results() string {
	width := 0
	for _, r := range m.records {
		width = max(width, len(r.Display()))
	}

	var b strings.Builder

	for i, r := range m.records {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%3s ", "#"+strconv.Itoa(i+1))))

		display := fmt.Sprintf("%-*s  %s", width, r.Display(), r.Numeric())

		switch r.Expression.Kind() {
		case lang.KindNone:
			b.WriteString(noneStyle.Render(display))
		case lang.KindOffset:
			b.WriteString(offsetStyle.Render(display))
		default:
			b.WriteString(resultStyle.Render(display))
		}
	}

	return b.String()
}
