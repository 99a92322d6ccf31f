package generation

import (
	"strings"
	"unicode"
)

const fence = "```"

// Sanitize strips the markdown code fence that models tend to wrap JSON in.
// It removes an opening fence with its optional language tag up to the first
// newline, and a closing fence. It does not repair the JSON itself.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, fence) {
		text = strings.TrimPrefix(text, fence)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			// Single-line reply like ```json[...]``` or ```JSON {...}```.
			text = trimLanguageTag(text)
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), fence)

	return strings.TrimSpace(text)
}

// trimLanguageTag drops a language tag written directly before the JSON
// value on the fence line. Text that is not a tag is returned unchanged.
func trimLanguageTag(text string) string {
	i := strings.IndexAny(text, "[{")
	if i <= 0 {
		return text
	}
	tag := strings.TrimSpace(text[:i])
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+' && r != '_' {
			return text
		}
	}
	return text[i:]
}
