package diagram

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"true stays lowercase", "true", "true"},
		{"false stays lowercase", "false", "false"},
		{"mixed-case boolean", "True", "true"},
		{"null keyword", "null", "null"},
		{"integer", "42", "42"},
		{"float", "3.14", "3.14"},
		{"negative", "-7", "-7"},
		{"exponent normalizes", "1e3", "1000"},
		{"leading zeros lost", "007", "7"},
		{"plain text quoted", "hello", `"hello"`},
		{"text with spaces", "hello world", `"hello world"`},
		{"empty string quoted", "", `""`},
		{"numeric-ish text", "1.2.3", `"1.2.3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatValueIdempotent(t *testing.T) {
	inputs := []string{"true", "false", "null", "42", "1e3", "hello", "", "already done", `"quoted"`}
	for _, in := range inputs {
		once := FormatValue(in)
		twice := FormatValue(once)
		if once != twice {
			t.Errorf("FormatValue not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
