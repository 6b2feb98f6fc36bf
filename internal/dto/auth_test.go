package dto

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.co", true},
		{"no-at-sign.example.com", false},
		{"missing-tld@example", false},
		{"@example.com", false},
		{"alice@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			req := &SignUpRequest{Email: tt.email}
			valid, _ := req.ValidateEmail()
			if valid != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, valid, tt.valid)
			}
		})
	}
}
