package security

import (
	"strconv"
	"testing"
)

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("GenerateVerificationCode failed: %v", err)
		}
		if len(code) != 5 {
			t.Fatalf("expected 5 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
		if n < 10000 || n > 99999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}
