package texthelper

import (
	"regexp"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////

// mentions, then any non alphanumeric non blank rune, then urls
var noisePattern = regexp.MustCompile(`(@[A-Za-z0-9]+)|([^0-9A-Za-z \t])|(\w+://\S+)`)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:'[\p{L}\p{N}]+)*`)

////////////////////////////////////////////////////////////////////////////////

// Normalize strips mentions, urls and every character outside [0-9A-Za-z] and
// whitespace, then collapses whitespace runs into single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(noisePattern.ReplaceAllString(text, " ")), " ")
}

// Words splits text into word tokens. Punctuation such as "$" or "#" never
// belongs to a token, so "$ABC" yields "ABC".
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// IsNumeric reports tokens made only of ASCII digits
func IsNumeric(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
