// backend/src/security/validation/sanitizers.go
package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy *bluemonday.Policy

func init() {
	strictHTMLPolicy = bluemonday.StrictPolicy() // Removes all HTML tags
}

// SanitizeText removes all HTML tags from an input string before it is saved.
// bluemonday escapes the surviving text, so entities are decoded back to keep
// names such as "Makan & Minum" intact; the JSON encoder escapes on output.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictHTMLPolicy.Sanitize(StripUnprintable(s))))
}

// SanitizeForFormulaInjection prepends a single quote if the string starts with a formula character.
// Used when writing CSV exports that may be opened in a spreadsheet.
func SanitizeForFormulaInjection(s string) string {
	if HasFormulaPrefix(s) {
		return "'" + s
	}
	return s
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
