package edit

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

func TestCurrentWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		cursor int
		want   string
	}{
		{"", 0, ""},
		{"no", 2, "no"},
		{"now + 1h", 3, "now"},
		{"now + 1h", 8, ""},
		{"12", 2, ""},
		{"#3 + 1s", 2, "#3"},
		{"#UT", 3, "#UT"},
		{"#UTC+", 5, "#UTC+"},
		{"#UTC-1", 6, "#UTC-1"},
		{"1h+#2", 5, "#2"},
		{"(#1", 3, "#1"},
		{"now", 1, "n"},
		{"now", 99, "now"},
	}

	for _, tt := range tests {
		got, n := currentWord([]rune(tt.line), tt.cursor)
		if got != tt.want {
			t.Errorf("currentWord(%q, %d) = %q, want %q", tt.line, tt.cursor, got, tt.want)
		}

		if n != len([]rune(tt.want)) {
			t.Errorf("currentWord(%q, %d) length = %d, want %d", tt.line, tt.cursor, n, len(tt.want))
		}
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	first := candidates(0)
	if len(first) != 48 {
		t.Errorf("candidates(0) has %d entries, want 48", len(first))
	}

	for _, want := range []string{"now", "#UTC+0", "#UTC+23", "#UTC-23"} {
		if !slices.Contains(first, want) {
			t.Errorf("candidates(0) missing %q", want)
		}
	}

	if slices.Contains(first, "#1") {
		t.Error("candidates(0) offers a reference on the first line")
	}

	third := candidates(2)
	if !slices.Contains(third, "#1") || !slices.Contains(third, "#2") || slices.Contains(third, "#3") {
		t.Errorf("candidates(2) references = %v, want #1 and #2", third[len(keywords):])
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	if m := complete("", 3); m != nil {
		t.Errorf("complete(\"\") = %v, want nil", m)
	}

	m := complete("no", 0)
	if len(m) == 0 || m[0].Str != "now" {
		t.Errorf("complete(\"no\") top match = %v, want now", m)
	}

	m = complete("#UTC-1", 0)
	if len(m) == 0 || m[0].Str != "#UTC-1" {
		t.Errorf("complete(\"#UTC-1\") top match = %v, want #UTC-1", m)
	}

	for _, match := range complete("#4", 2) {
		if match.Str == "#4" {
			t.Error("complete offered a reference to a later line")
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	t.Parallel()

	matches := fuzzy.Find("u", candidates(0))

	if got := renderCandidateBar(nil, 0, 80); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, 0, 0); got != "" {
		t.Errorf("renderCandidateBar(width 0) = %q, want empty", got)
	}

	bar := renderCandidateBar(matches, 0, 40)
	if w := lipgloss.Width(bar); w > 40 {
		t.Errorf("renderCandidateBar width = %d, want <= 40", w)
	}
}
