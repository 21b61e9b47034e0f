package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "negative weight: %d", -1)

	if got := err.Error(); got != "INVALID_CONFIG: negative weight: -1" {
		t.Errorf("Error() = %q, want %q", got, "INVALID_CONFIG: negative weight: -1")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeCache, cause, "lookup family %s", "abc123")

	if got := err.Error(); got != "CACHE_ERROR: lookup family abc123: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "empty node set")

	if !Is(err, ErrCodeInvalidDocument) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true for non-matching code, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for plain error, want false")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(ErrCodeCacheMiss, "family not cached")
	outer := fmt.Errorf("seed layout: %w", inner)

	if !Is(outer, ErrCodeCacheMiss) {
		t.Error("Is() = false through fmt.Errorf wrapping, want true")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "no such family")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q for plain error, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInternal, stderrors.New("oops"), "optimize family")
	if got := UserMessage(err); got != "optimize family" {
		t.Errorf("UserMessage() = %q, want %q", got, "optimize family")
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}
