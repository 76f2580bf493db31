package format

import (
	"testing"

	"github.com/dhamidi/eqsolve/parser"
)

func formatSystem(t *testing.T, input string) string {
	t.Helper()
	sys, err := parser.Parse([]byte(input))
	if err != nil {
		t.Fatalf("parse error for input %q: %v", input, err)
	}
	return Render(sys)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "unit coefficients",
			input:    "1x + 1y = 2",
			expected: "x + y = 2",
		},
		{
			name:     "subtraction",
			input:    "x - y = 2",
			expected: "x - y = 2",
		},
		{
			name:     "leading negation",
			input:    "-x + y = 0",
			expected: "-x + y = 0",
		},
		{
			name:     "negative coefficient after plus",
			input:    "2x + -2y = 1",
			expected: "2x - 2y = 1",
		},
		{
			name:     "negative leading coefficient",
			input:    "-3x - 4y = -5",
			expected: "-3x - 4y = -5",
		},
		{
			name:     "decimals",
			input:    "0.50x + 1.25y = 2.0",
			expected: "0.5x + 1.25y = 2",
		},
		{
			name:     "double negative",
			input:    "x - -2y = 3",
			expected: "x + 2y = 3",
		},
		{
			name:     "duplicates are kept",
			input:    "x + x = 4",
			expected: "x + x = 4",
		},
		{
			name:     "zero coefficient",
			input:    "0x + y = 1",
			expected: "0x + y = 1",
		},
		{
			name:     "multiple equations",
			input:    "2x + 3y = 8\n\n   x-y=2",
			expected: "2x + 3y = 8\nx - y = 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSystem(t, tt.input)
			if got != tt.expected {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.expected)
			}
		})
	}
}

func TestRenderNil(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q", got)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{-2, "-2"},
		{2.5, "2.5"},
		{0.0000001, "0.0000001"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
