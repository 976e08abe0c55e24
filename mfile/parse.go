package mfile

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxElements is the largest element count a zeros declaration may
// allocate.
const MaxElements = 1 << 30

// parser holds the state of a single-line statement parser.
type parser struct {
	input []byte
	pos   int
	col   int
}

// target is the left-hand side of a statement.
type target struct {
	name  string
	index int // 0-based plane index when slice is set
	slice bool
}

func newParser(s string) *parser {
	return &parser{input: []byte(s), col: 1}
}

// parseStatement parses one line of input into a typed Statement.
func parseStatement(line int, text string) (*Statement, error) {
	p := newParser(text)

	p.skipSpace()

	t, err := p.parseTarget()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.expect('=') {
		return nil, p.fail(ErrMalformedStatement, "expected '='",
			slog.String("name", t.name))
	}

	p.skipSpace()

	payload, zeros, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if err := p.parseTrailer(); err != nil {
		return nil, err
	}

	st := &Statement{
		Name:    t.name,
		Index:   t.index,
		Payload: payload,
		Line:    line,
	}

	switch {
	case t.slice:
		st.Kind = KindSliceAssign
	case zeros:
		st.Kind = KindZerosDecl
	case payload.Rank() == 1:
		st.Kind = KindVectorAssign
	default:
		st.Kind = KindMatrixAssign
	}

	return st, nil
}

// IsSliceAssignment reports whether the text before the first '=' contains
// a parenthesis, as in "Map(:,:,3) = [...]".
func IsSliceAssignment(line string) bool {
	lhs, _, _ := strings.Cut(line, "=")

	return strings.Contains(lhs, "(")
}

// ParseVariableName returns the text before the first '=' in line, trimmed
// and cut at any '('. It fails only when line has no '='. The loader
// applies the stricter statement grammar.
func ParseVariableName(line string) (string, error) {
	lhs, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", ErrMalformedStatement.With(
			slog.String("reason", "missing '='"),
		)
	}

	name := strings.TrimSpace(lhs)
	if before, _, found := strings.Cut(name, "("); found {
		name = strings.TrimSpace(before)
	}

	return name, nil
}

// ParseSliceIndex returns the 0-based plane index of a slice assignment:
// the third comma-separated field inside the parentheses on the left of the
// first '=', minus one. "Map(:,:,3)" yields 2.
func ParseSliceIndex(line string) (int, error) {
	lhs, _, _ := strings.Cut(line, "=")

	open, end := strings.IndexByte(lhs, '('), strings.LastIndexByte(lhs, ')')
	if open < 0 || end < open {
		return 0, ErrMalformedStatement.With(
			slog.String("reason", "not a slice assignment"),
		)
	}

	fields := strings.Split(lhs[open+1:end], ",")
	if len(fields) < 3 {
		return 0, ErrMalformedStatement.With(
			slog.String("reason", "fewer than three subscripts"),
			slog.Int("fields", len(fields)),
		)
	}

	tok := strings.TrimSpace(fields[2])

	k, ok := parsePositiveInt(tok)
	if !ok {
		return 0, ErrNumericParse.With(slog.String("token", tok))
	}

	return k - 1, nil
}

// ParsePayload parses the value to the right of the first '=' in line.
func ParsePayload(line string) (Array, error) {
	_, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return nil, ErrMalformedStatement.With(
			slog.String("reason", "missing '='"),
		)
	}

	p := newParser(rhs)

	p.skipSpace()

	payload, _, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if err := p.parseTrailer(); err != nil {
		return nil, err
	}

	return payload, nil
}

// parseTarget parses: Identifier [ '(' ':' ',' ':' ',' Integer ')' ].
func (p *parser) parseTarget() (target, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return target{}, err
	}

	p.skipSpace()

	if p.peek() != '(' {
		return target{name: name}, nil
	}

	p.advance()

	for _, ch := range []rune{':', ',', ':', ','} {
		p.skipSpace()

		if !p.expect(ch) {
			return target{}, p.fail(ErrMalformedStatement,
				"expected '"+string(ch)+"' in subscript",
				slog.String("name", name))
		}
	}

	p.skipSpace()

	k, err := p.parseInteger()
	if err != nil {
		return target{}, err
	}

	p.skipSpace()

	if !p.expect(')') {
		return target{}, p.fail(ErrMalformedStatement,
			"expected ')' after subscript",
			slog.String("name", name))
	}

	return target{name: name, index: k - 1, slice: true}, nil
}

func (p *parser) parseIdentifier() (string, error) {
	start := p.pos

	r := p.peek()
	if r != '_' && !isLetter(r) {
		return "", p.fail(ErrMalformedStatement, "expected identifier")
	}

	for !p.eof() {
		r = p.peek()
		if r != '_' && !isLetter(r) && !isDigit(r) {
			break
		}

		p.advance()
	}

	return string(p.input[start:p.pos]), nil
}

// parseInteger parses a positive decimal integer.
func (p *parser) parseInteger() (int, error) {
	col := p.col
	tok := p.token(",)")

	if tok == "" {
		return 0, p.fail(ErrMalformedStatement, "expected integer")
	}

	n, ok := parsePositiveInt(tok)
	if !ok {
		return 0, ErrNumericParse.With(
			slog.String("token", tok),
			slog.Int("column", col),
		)
	}

	return n, nil
}

// parseValue parses a zeros declaration or a bracketed literal.
// It reports whether the value was a zeros declaration.
func (p *parser) parseValue() (Array, bool, error) {
	switch {
	case p.peek() == '[':
		a, err := p.parseLiteral()

		return a, false, err

	case p.hasPrefix("zeros"):
		a, err := p.parseZeros()

		return a, true, err

	case p.eof():
		return nil, false, p.fail(ErrMalformedStatement, "missing value")

	default:
		return nil, false, p.fail(ErrMalformedStatement,
			"expected '[' or zeros(...)")
	}
}

// parseZeros parses: "zeros" '(' Integer { ',' Integer } ')'.
func (p *parser) parseZeros() (Array, error) {
	for range len("zeros") {
		p.advance()
	}

	p.skipSpace()

	if !p.expect('(') {
		return nil, p.fail(ErrMalformedStatement, "expected '(' after zeros")
	}

	var dims []int

	for {
		p.skipSpace()

		d, err := p.parseInteger()
		if err != nil {
			return nil, err
		}

		dims = append(dims, d)

		p.skipSpace()

		if p.expect(',') {
			continue
		}

		if p.expect(')') {
			break
		}

		return nil, p.fail(ErrMalformedStatement, "unterminated zeros(...)")
	}

	if len(dims) > 3 {
		return nil, p.fail(ErrMalformedStatement, "unsupported rank",
			slog.Int("rank", len(dims)))
	}

	n := 1
	for _, d := range dims {
		if d > MaxElements/n {
			return nil, p.fail(ErrMalformedStatement, "array too large",
				slog.String("shape", formatShape(dims)))
		}

		n *= d
	}

	return Zeros(dims...)
}

// parseLiteral parses: '[' Row { ';' Row } [';'] ']'.
//
// A single row yields a Vector. Several rows, or a single row closed by a
// trailing ';', yield a Matrix.
func (p *parser) parseLiteral() (Array, error) {
	p.advance() // '['

	var (
		rows     [][]float64
		trailing bool
	)

	for {
		start, col := p.pos, p.col

		for !p.eof() && p.peek() != ';' && p.peek() != ']' {
			p.advance()
		}

		if p.eof() {
			return nil, p.fail(ErrMalformedStatement, "unterminated '['")
		}

		sep := p.peek()
		p.advance()

		row, err := parseRow(string(p.input[start:p.pos-1]), col)
		if err != nil {
			return nil, err
		}

		if row == nil {
			if sep == ']' && len(rows) > 0 {
				trailing = true

				break
			}

			return nil, ErrMalformedStatement.With(
				slog.String("reason", "empty row"),
				slog.Int("row", len(rows)+1),
				slog.Int("column", col),
			)
		}

		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, ErrMalformedStatement.With(
				slog.String("reason", "ragged rows"),
				slog.Int("row", len(rows)+1),
				slog.Int("expected", len(rows[0])),
				slog.Int("got", len(row)),
			)
		}

		rows = append(rows, row)

		if sep == ']' {
			break
		}
	}

	if len(rows) == 1 && !trailing {
		return Vector(rows[0]), nil
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)

	for _, row := range rows {
		data = append(data, row...)
	}

	return NewMatrix(len(rows), cols, data)
}

// parseTrailer parses: [';'] [Comment] EOL.
func (p *parser) parseTrailer() error {
	p.skipSpace()
	p.expect(';')
	p.skipSpace()

	if p.hasPrefix("//") || p.peek() == '%' {
		p.pos = len(p.input)
	}

	if !p.eof() {
		return p.fail(ErrMalformedStatement, "unexpected trailing text",
			slog.String("text", snippet(string(p.input[p.pos:]))))
	}

	return nil
}

// parseRow splits a row on single spaces and parses each value.
// It returns nil for a blank row.
func parseRow(raw string, col int) ([]float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, " ")
	row := make([]float64, len(fields))

	for i, f := range fields {
		if f == "" {
			return nil, ErrMalformedStatement.With(
				slog.String("reason", "consecutive spaces in row"),
				slog.Int("column", col),
			)
		}

		v, ok := parseFixed(f)
		if !ok {
			return nil, ErrNumericParse.With(
				slog.String("token", snippet(f)),
				slog.Int("column", col),
			)
		}

		row[i] = v
	}

	return row, nil
}

// parseFixed parses a fixed-point decimal: [+-] digits [. digits] or
// [+-] . digits. Exponents, infinities, and NaN are rejected.
func parseFixed(s string) (float64, bool) {
	i, digits := 0, 0

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
		digits++
	}

	if i < len(s) && s[i] == '.' {
		i++

		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
			digits++
		}
	}

	if digits == 0 || i != len(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func parsePositiveInt(s string) (int, bool) {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// fail returns sentinel annotated with a reason and the current column.
func (p *parser) fail(sentinel *Error, reason string, attrs ...slog.Attr) *Error {
	return sentinel.With(append([]slog.Attr{
		slog.String("reason", reason),
		slog.Int("column", p.col),
	}, attrs...)...)
}

// token consumes and returns text up to whitespace or any rune in stop.
func (p *parser) token(stop string) string {
	start := p.pos

	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || strings.ContainsRune(stop, r) {
			break
		}

		p.advance()
	}

	return string(p.input[start:p.pos])
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.input[p.pos:], []byte(s))
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	_, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	p.col++
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
