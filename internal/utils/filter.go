package utils

import (
	"strings"
	"unicode"
)

// invalidNameChars are rejected in new file and directory names.
const invalidNameChars = `<>:"|?*`

// maxNameLength is the longest accepted file or directory name.
const maxNameLength = 255

// IsTokenSeparator reports whether a rune splits a name into word tokens.
// Dots, underscores, hyphens and any whitespace all separate tokens.
func IsTokenSeparator(r rune) bool {
	return r == '.' || r == '_' || r == '-' || unicode.IsSpace(r)
}

// StringContainsIgnoreCase checks if string contains substring case-insensitively
func StringContainsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// HasPrefixIgnoreCase checks if string has prefix case-insensitively
func HasPrefixIgnoreCase(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// ValidFilename checks whether a proposed file or directory name is safe
// to create or rename to. Rejects empty names, names over 255 characters,
// traversal sequences, embedded path separators, and characters that are
// invalid on common filesystems.
func ValidFilename(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if len(name) > maxNameLength {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// IsHiddenName reports whether a path component is a dot-entry.
func IsHiddenName(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
