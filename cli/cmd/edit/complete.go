package edit

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/utcalc/lang"
)

// keywords are the fixed completion candidates that are not references.
var keywords = func() []string {
	words := []string{"now", "#" + lang.UTC.String()}
	for o := lang.Offset(1); o <= lang.MaxOffset; o++ {
		words = append(words, "#"+o.String())
	}

	for o := lang.Offset(1); o <= lang.MaxOffset; o++ {
		words = append(words, "#"+(-o).String())
	}

	return words
}()

// candidates returns every completion available on the given 0-based row: the
// keywords and a back-reference to each earlier line.
func candidates(row int) []string {
	names := make([]string, 0, len(keywords)+row)
	names = append(names, keywords...)

	for n := 1; n <= row; n++ {
		names = append(names, "#"+strconv.Itoa(n))
	}

	return names
}

func isWordRune(r rune) bool {
	return r == '#' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// currentWord returns the completable word that ends at the cursor, along
// with its length in runes. A word starts with '#' or a letter. The sign of a
// partial "#UTC+N" directive belongs to the word.
func currentWord(line []rune, cursor int) (string, int) {
	cursor = min(max(cursor, 0), len(line))
	start := cursor

	for start > 0 && isWordRune(line[start-1]) {
		start--
	}

	if start > 0 && (line[start-1] == '+' || line[start-1] == '-') {
		if strings.HasSuffix(string(line[:start-1]), "#UTC") {
			start -= len("#UTC") + 1
		}
	}

	word := line[start:cursor]
	if len(word) == 0 || !(word[0] == '#' || unicode.IsLetter(word[0])) {
		return "", 0
	}

	return string(word), len(word)
}

// complete ranks the candidates for row against word.
func complete(word string, row int) fuzzy.Matches {
	if word == "" {
		return nil
	}

	return fuzzy.Find(word, candidates(row))
}

// renderCandidateBar renders matches on one line no wider than width,
// eliding the tail with "...".
func renderCandidateBar(matches fuzzy.Matches, selected, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+sepWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
