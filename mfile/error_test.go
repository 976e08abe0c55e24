package mfile

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrNumericParse.With(slog.String("token", "1e3"))

	if !errors.Is(derived, ErrNumericParse) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrMalformedStatement) {
		t.Error("derived error matches an unrelated sentinel")
	}

	wrapped := fmt.Errorf("context: %w", ErrReadInput.Wrap(errors.New("eof")))
	if !errors.Is(wrapped, ErrReadInput) {
		t.Error("wrapped error does not match its sentinel")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NewError("bad"), "bad"},
		{NewError("bad").Wrap(errors.New("cause")), "bad: cause"},
		{WrapError(errors.New("cause")), "cause"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_WithDoesNotMutate(t *testing.T) {
	base := NewError("base")
	_ = base.With(slog.Int("n", 1))

	if len(base.Attrs()) != 0 {
		t.Error("With modified the receiver")
	}
}

func TestWrapError_KeepsError(t *testing.T) {
	orig := ErrIndexRange.With(slog.Int("i", 3))

	if got := WrapError(fmt.Errorf("outer: %w", orig)); got != orig {
		t.Errorf("WrapError did not return the inner *Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrUnboundTarget.Wrap(errors.New("why")).With(slog.String("name", "Map"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	if got["error"] != ErrUnboundTarget.msg || got["cause"] != "why" || got["name"] != "Map" {
		t.Errorf("unexpected log value %v", got)
	}
}

func TestLineError(t *testing.T) {
	le := &LineError{
		Line: 12,
		Text: "Map(:,:,1) = [" + strings.Repeat("1 ", 500) + "1];",
		Err:  ErrUnboundTarget,
	}

	if !strings.HasPrefix(le.Error(), "line 12: ") {
		t.Errorf("Error() = %q", le.Error())
	}

	if !errors.Is(le, ErrUnboundTarget) {
		t.Error("LineError does not unwrap to its cause")
	}

	if s := le.Snippet(); len(s) > maxSnippet+3 || !strings.HasSuffix(s, "...") {
		t.Errorf("Snippet() = %q", s)
	}
}
