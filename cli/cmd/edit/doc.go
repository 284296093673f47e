// Package edit is an interactive terminal editor for utcalc documents.
//
// The document is edited on the left and every line's result is shown on the
// right, refreshed on each keystroke and once per second so that "now"
// stays current. Typing a word that begins with '#' or a letter offers
// fuzzy-ranked completions: the "now" keyword, offset directives and
// back-references to earlier lines.
//
// Keys:
//
//	tab        accept the selected completion
//	shift+tab  select the next completion
//	ctrl+y     copy every result, one "display<TAB>numeric" line each
//	esc/ctrl+c quit
package edit
