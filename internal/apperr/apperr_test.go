package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"conflict", Conflict("dup"), KindConflict},
		{"not found", NotFound("gone"), KindNotFound},
		{"invalid argument", InvalidArgument("bad"), KindInvalidArgument},
		{"unauthenticated", Unauthenticated("nope"), KindUnauthenticated},
		{"internal", Internal("boom", errors.New("cause")), KindInternal},
		{"plain error", errors.New("plain"), KindInternal},
		{"wrapped kinded error", fmt.Errorf("outer: %w", NotFound("inner")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInternalize(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if Internalize(nil) != nil {
			t.Error("nil must stay nil")
		}
	})

	t.Run("kinded error passes through unchanged", func(t *testing.T) {
		orig := Conflict("dup")
		if got := Internalize(orig); got != error(orig) {
			t.Errorf("kinded error was rewrapped: %v", got)
		}
	})

	t.Run("unknown error becomes Internal and keeps its cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := Internalize(cause)
		if KindOf(got) != KindInternal {
			t.Fatalf("expected Internal, got %v", got)
		}
		if !errors.Is(got, cause) {
			t.Error("cause must remain reachable via errors.Is")
		}
	})
}

func TestIsKind(t *testing.T) {
	if IsKind(nil, KindInternal) {
		t.Error("nil error has no kind")
	}
	if !IsKind(NotFound("x"), KindNotFound) {
		t.Error("IsKind missed a matching kind")
	}
	if IsKind(NotFound("x"), KindConflict) {
		t.Error("IsKind matched the wrong kind")
	}
}

func TestKindString(t *testing.T) {
	if KindConflict.String() != "CONFLICT" {
		t.Errorf("unexpected code: %s", KindConflict)
	}
	if Kind(200).String() != "INTERNAL" {
		t.Error("unknown kinds must render as INTERNAL")
	}
}
