package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// signatures lists the parameter names of callable functions: the dataset
// functions registered by mfile plus the expr builtins most useful on
// numeric arrays.
var signatures = map[string][]string{
	// dataset
	"plane":    {"name", "k"},
	"shape":    {"name"},
	"spectrum": {"i", "j"},
	"unit":     {"name"},

	// expr builtins
	"abs":     {"x"},
	"all":     {"array", "predicate"},
	"any":     {"array", "predicate"},
	"ceil":    {"x"},
	"count":   {"array", "predicate"},
	"filter":  {"array", "predicate"},
	"find":    {"array", "predicate"},
	"first":   {"array"},
	"float":   {"v"},
	"floor":   {"x"},
	"int":     {"v"},
	"last":    {"array"},
	"len":     {"v"},
	"map":     {"array", "mapper"},
	"max":     {"...values"},
	"mean":    {"...values"},
	"median":  {"...values"},
	"min":     {"...values"},
	"none":    {"array", "predicate"},
	"one":     {"array", "predicate"},
	"reduce":  {"array", "reducer", "initial"},
	"reverse": {"array"},
	"round":   {"x"},
	"sort":    {"array", "order"},
	"string":  {"v"},
	"sum":     {"array"},
	"type":    {"v"},
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the innermost call enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based
	inCall   bool
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// detectFunctionCall reports the function whose argument list contains the
// cursor, and which argument the cursor is in.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	open, depth := -1, 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isIdentRune(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// getSignature returns the display signature and parameter names of the named
// function, or "" if it is unknown.
func getSignature(name string) (signature string, params []string) {
	params, ok := signatures[name]
	if !ok {
		return "", nil
	}

	return name + "(" + strings.Join(params, ", ") + ")", params
}

// renderSignatureHint renders name(params...) with the parameter at argIdx
// highlighted. A variadic final parameter stays highlighted for every
// argument past it.
func renderSignatureHint(name string, params []string, argIdx int) string {
	if name == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if argIdx == i || (variadic && argIdx > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
