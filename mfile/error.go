package mfile

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Predefined errors (sentinel values).
var (
	ErrMalformedStatement = NewError("malformed statement")
	ErrNumericParse       = NewError("invalid numeric literal")
	ErrUnboundTarget      = NewError("slice target is not a compatible tensor")
	ErrReadInput          = NewError("failed to read input")
	ErrUnknownVariable    = NewError("unknown variable")
	ErrRankMismatch       = NewError("rank mismatch")
	ErrIndexRange         = NewError("index out of range")
	ErrInvalidAxis        = NewError("invalid spectral axis")
	ErrExprCompile        = NewError("expression compilation failed")
	ErrExprEvaluate       = NewError("expression evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message.
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// The receiver is not modified.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// maxSnippet bounds the statement text included in messages and logs.
// Slice assignments of large maps are single lines of several megabytes.
const maxSnippet = 64

// LineError reports the input line on which loading failed.
type LineError struct {
	Line int    // 1-based line number
	Text string // Raw line content
	Err  error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *LineError) Unwrap() error { return e.Err }

// Snippet returns the line content, shortened to a printable length.
func (e *LineError) Snippet() string {
	return snippet(e.Text)
}

// LogValue implements slog.LogValuer.
func (e *LineError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Line),
		slog.String("text", e.Snippet()),
		slog.Any("cause", e.Err),
	)
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxSnippet {
		return s
	}

	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
