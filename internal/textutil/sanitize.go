package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes name safe as a single path element. Path separators,
// colons, and asterisks become dashes. Quotes, wildcards, redirection
// characters, and control characters are dropped. Leading dots are removed so
// the result is never a hidden file or a relative path element.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*':
			return '-'
		case strings.ContainsRune(`?"<>|`, r):
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	return strings.TrimSpace(strings.TrimLeft(cleaned, "."))
}
