package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "apiclient.books.list",
		Kind: KindExecution,
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindExecution {
		t.Fatalf("expected kind %s", KindExecution)
	}
}

func TestOpErrorMessageIncludesPath(t *testing.T) {
	err := &OpError{Op: "kvstore.write", Kind: KindExecution, Path: "/tmp/cache.json", Err: errors.New("disk full")}
	want := "kvstore.write: execution (path=/tmp/cache.json): disk full"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := fmt.Errorf("outer: %w", &OpError{Kind: KindInvalidConfig, Op: "configfile.load"})

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match wrapped op error")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Fatalf("expected IsKind false for plain errors")
	}
}

func TestReasonStripsOpDecorations(t *testing.T) {
	inner := &OpError{Op: "apiclient.do", Kind: KindExecution, Err: errors.New("connection refused")}
	outer := &OpError{Op: "apiclient.books.list", Kind: KindExecution, Err: inner}

	if got := Reason(outer); got != "connection refused" {
		t.Fatalf("expected innermost reason, got %q", got)
	}
	if got := Reason(nil); got != "" {
		t.Fatalf("expected empty reason for nil, got %q", got)
	}
	if got := Reason(errors.New("plain")); got != "plain" {
		t.Fatalf("expected plain message, got %q", got)
	}
}
