package session

import (
	"regexp"
	"testing"
)

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[ABCDEFGHJKMNPQRSTUVWXYZ23456789]{4}$`)

	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Errorf("GenerateCode() = %q, doesn't match expected pattern", code)
		}
	}
}

func TestGenerateCode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	dupes := 0
	for i := 0; i < 1000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatal(err)
		}
		if seen[code] {
			dupes++
		}
		seen[code] = true
	}
	// 31^4 combinations leave essentially no room for collisions in 1000 draws
	if dupes > 5 {
		t.Errorf("too many duplicate codes: %d out of 1000", dupes)
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ABCD", "ABCD", true},
		{" abcd ", "ABCD", true},
		{"x7k2", "X7K2", true},
		{"ABC", "", false},
		{"ABCDE", "", false},
		{"AB0D", "", false},
		{"ABID", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeCode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeCode(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
