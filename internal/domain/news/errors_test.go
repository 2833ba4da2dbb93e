package news

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrKindString(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrNetwork, "network error"},
		{ErrTimeout, "timeout"},
		{ErrParse, "parse error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("fetch: %w", context.DeadlineExceeded)
	err := &FetchError{Kind: ErrTimeout, Section: "World", Err: cause}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("FetchError should unwrap to its cause")
	}

	var fe *FetchError
	if !errors.As(error(err), &fe) || fe.Kind != ErrTimeout {
		t.Fatal("errors.As should recover the FetchError")
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Name: "My Feed", Reason: "unknown section \"Wrold\""}
	if err.Error() != "config: My Feed: unknown section \"Wrold\"" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
