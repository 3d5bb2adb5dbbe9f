package tags

import "strings"

// maxFolderNameLen caps sanitized folder names for filesystem compatibility
const maxFolderNameLen = 100

// reservedNames are device names that cannot be used as directory names on
// Windows filesystems, matched case-insensitively.
var reservedNames = func() map[string]bool {
	names := []string{"CON", "PRN", "AUX", "NUL"}
	for i := 1; i <= 9; i++ {
		names = append(names, "COM"+string(rune('0'+i)), "LPT"+string(rune('0'+i)))
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()

// SanitizeFolderName converts a tag into a name safe to use as a directory
// on common filesystems:
//   - characters illegal on Windows (< > : " / \ | ? *) become underscores
//   - whitespace runs collapse to single spaces
//   - trailing dots and spaces are stripped
//   - reserved device names (CON, PRN, AUX, NUL, COM1-9, LPT1-9) get a
//     leading underscore
//   - an empty result becomes the literal "tag"
//   - the result is truncated to 100 characters
func SanitizeFolderName(tag string) string {
	s := tag
	for _, c := range []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*"} {
		s = strings.ReplaceAll(s, c, "_")
	}

	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimRight(s, ". ")

	if reservedNames[strings.ToUpper(s)] {
		s = "_" + s
	}

	if s == "" {
		return "tag"
	}

	if runes := []rune(s); len(runes) > maxFolderNameLen {
		s = string(runes[:maxFolderNameLen])
		s = strings.TrimRight(s, ". ")
	}

	return s
}
