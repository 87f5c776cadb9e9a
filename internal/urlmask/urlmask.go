// Package urlmask protects URLs from the translation service by swapping
// them for opaque placeholder tokens before a sentence is sent out, and
// restoring them afterward. Placeholders contain only ASCII letters and
// digits so translators pass them through verbatim.
package urlmask

import (
	"fmt"
	"regexp"
	"strings"
)

// urlPattern recognizes an explicit scheme, a www. prefix, or a bare domain
// ending in a known TLD followed by any non-whitespace continuation.
var urlPattern = regexp.MustCompile(`(?i)(?:https?://|ftp://)\S+|(?:www\.)\S+|[A-Za-z0-9.-]+\.(?:com|org|net|edu|gov|ru|ua|by|kz|info|biz|io|ai|au|uk|de|fr|it|es|cz|pl|se|no|dk|nl|be|ch|jp|cn|kr|br|in)\S*`)

// Replacement records one masked URL and the placeholder standing in for it.
type Replacement struct {
	Placeholder string
	URL         string
}

// Mask replaces every URL in sentence with a unique placeholder token and
// returns the masked sentence together with the replacements in order of
// appearance. The trailing X delimiter guarantees no placeholder is a
// substring of another.
func Mask(sentence string) (string, []Replacement) {
	var reps []Replacement
	masked := urlPattern.ReplaceAllStringFunc(sentence, func(url string) string {
		placeholder := fmt.Sprintf("URLTOKEN%dX", len(reps))
		reps = append(reps, Replacement{Placeholder: placeholder, URL: url})
		return placeholder
	})
	return masked, reps
}

// Unmask restores the original URLs by exact substring replacement. It is
// independent of how the translator reordered the surrounding text.
func Unmask(text string, reps []Replacement) string {
	for _, r := range reps {
		text = strings.ReplaceAll(text, r.Placeholder, r.URL)
	}
	return text
}
