package tags

import (
	"strings"
	"testing"
)

func TestSanitizeFolderName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain tag", "Family", "Family"},
		{"illegal characters", `a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"whitespace collapsed", "Family   Trip", "Family Trip"},
		{"trailing dots stripped", "Venue...", "Venue"},
		{"trailing spaces stripped", "Venue   ", "Venue"},
		{"reserved device name", "CON", "_CON"},
		{"reserved device name lowercase", "nul", "_nul"},
		{"reserved com port", "COM7", "_COM7"},
		{"reserved lpt port", "lpt1", "_lpt1"},
		{"not reserved", "CONCERT", "CONCERT"},
		{"empty becomes tag", "", "tag"},
		{"only illegal becomes underscores", "???", "___"},
		{"only dots becomes tag", "...", "tag"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFolderName(tc.input); got != tc.expected {
				t.Errorf("SanitizeFolderName(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestSanitizeFolderNameTruncates(t *testing.T) {
	long := strings.Repeat("x", 250)
	got := SanitizeFolderName(long)
	if len([]rune(got)) != 100 {
		t.Errorf("expected 100 characters, got %d", len([]rune(got)))
	}
}
