package errors

import (
	"strings"
	"unicode"
)

// maxNameLen bounds variant names and logo ids.
const maxNameLen = 128

// ValidateName checks an identifier that ends up in file names or URLs,
// such as a variant name or a logo id. Spaces and punctuation are allowed,
// but path separators and control characters are not.
func ValidateName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidName, "name cannot be empty")
	case len(name) > maxNameLen:
		return New(ErrCodeInvalidName, "name too long (max %d bytes)", maxNameLen)
	case strings.Contains(name, ".."):
		return New(ErrCodeInvalidName, "name %q contains \"..\"", name)
	}
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			return New(ErrCodeInvalidName, "name %q contains control character %U", name, r)
		case r == '/' || r == '\\':
			return New(ErrCodeInvalidName, "name %q contains path separator %q", name, r)
		}
	}
	return nil
}

// Slug converts a display name into a lowercase token safe for file names:
// letters and digits are kept, every other run of characters becomes a single dash.
// An empty result falls back to "slide".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "slide"
	}
	return s
}
