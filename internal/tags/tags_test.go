package tags

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Family", "Family"},
		{"  Family  ", "Family"},
		{"Family   Trip", "Family Trip"},
		{"Family\t\nTrip", "Family Trip"},
		{"   ", ""},
		{"", ""},
		{" a  b   c ", "a b c"},
	}

	for _, tc := range testCases {
		if got := Normalize(tc.input); got != tc.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Family", "family") {
		t.Error("Equal should be case-insensitive")
	}
	if !Equal("VENUE", "venue") {
		t.Error("Equal should be case-insensitive")
	}
	if Equal("Family", "Familie") {
		t.Error("Equal matched different tags")
	}
}

func TestContains(t *testing.T) {
	list := []string{"Family", "Venue"}

	if !Contains(list, "family") {
		t.Error("Contains should match case-insensitively")
	}
	if !Contains(list, "Venue") {
		t.Error("Contains missed an exact match")
	}
	if Contains(list, "Beach") {
		t.Error("Contains matched an absent tag")
	}
	if Contains(nil, "Family") {
		t.Error("Contains matched in an empty list")
	}
}
