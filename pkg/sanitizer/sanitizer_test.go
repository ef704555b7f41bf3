package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{
			name:   "valid E.164 format",
			input:  "+972541234567",
			region: "US",
			want:   "+972541234567",
		},
		{
			name:   "with spaces",
			input:  "+972 54 123 4567",
			region: "US",
			want:   "+972541234567",
		},
		{
			name:   "with parentheses",
			input:  "+1 (201) 555-0123",
			region: "IL",
			want:   "+12015550123",
		},
		{
			name:   "national number uses default region",
			input:  "(201) 555-0123",
			region: "US",
			want:   "+12015550123",
		},
		{
			name:   "lowercase region",
			input:  "201-555-0123",
			region: "us",
			want:   "+12015550123",
		},
		{
			name:   "leading and trailing spaces",
			input:  "  +972541234567  ",
			region: "US",
			want:   "+972541234567",
		},
		{
			name:   "empty string",
			input:  "",
			region: "US",
			want:   "",
		},
		{
			name:   "only whitespace",
			input:  "   ",
			region: "US",
			want:   "",
		},
		{
			name:   "letters only",
			input:  "call me",
			region: "US",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.region)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
			if again := NormalizePhone(got, tt.region); again != got {
				t.Errorf("NormalizePhone not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Gregory   House ", "Gregory House"},
		{"Ann\tLee", "Ann Lee"},
		{"Zoë\x00 Smith", "Zoë Smith"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Dr.House@Example.COM "); got != "dr.house@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  follow-up visit  ", "follow-up visit"},
		{"line one\nline two", "line one\nline two"},
		{"bell\a removed", "bell removed"},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeChoice(t *testing.T) {
	if got := NormalizeChoice(" Female "); got != "female" {
		t.Errorf("NormalizeChoice() = %q", got)
	}
}
