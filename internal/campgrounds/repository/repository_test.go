package repository

import "testing"

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "cedar creek", "cedar creek"},
		{"percent", "50% off", `50\% off`},
		{"underscore", "snake_case", `snake\_case`},
		{"backslash", `C:\camp`, `C:\\camp`},
		{"regex metacharacters pass through", "(a+b)*", "(a+b)*"},
		{"mixed", `100%_done\`, `100\%\_done\\`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapePattern(tt.input); got != tt.want {
				t.Errorf("escapePattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
