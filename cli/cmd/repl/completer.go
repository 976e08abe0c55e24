package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/mdt/mfile"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "clear", "quit"}

// isWordBoundary reports whether r delimits a completion word: whitespace
// and expr operator or punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte offsets in input.
// The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns the identifiers that may be completed in eval mode:
// every variable in ds, the dataset functions, and the expr builtins, each
// group sorted.
func evalCandidates(ds *mfile.Dataset) []string {
	var names []string

	if ds != nil {
		names = append(names, ds.Names()...)
	}

	names = append(names, slices.Sorted(slices.Values(mfile.Functions))...)

	for _, name := range slices.Sorted(maps.Keys(builtin.Index)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// isFunction reports whether name is callable in an expression.
func isFunction(name string) bool {
	if slices.Contains(mfile.Functions, name) {
		return true
	}

	_, ok := builtin.Index[name]

	return ok
}

// computeMatches ranks the candidates for the word at the cursor. An empty
// word yields no matches so the hint line stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	var word string

	word, wordStart, wordEnd = wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	candidates := m.candidates
	if m.mode == modeCtrl {
		candidates = ctrlCommands
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar renders matches on one line, truncated with an ellipsis
// to fit width. The selected candidate is highlighted while tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)

			last := i == len(matches)-1
			if used+w > width || (!last && used+w+reserve > width) {
				b.WriteString(sep)
				b.WriteString(ellipsis)

				break
			}

			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters in bold.
// Functions get a "()" suffix that is not part of the completion.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
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

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
