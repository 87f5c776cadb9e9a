// Package segment splits article text into sentences using a syntactic
// boundary heuristic. The split is deterministic so that repeated runs over
// the same corpus always produce the same sentence sequence.
package segment

import (
	"strings"
	"unicode"
)

// Split divides text into sentences. A sentence ends at '.', '!' or '?'
// when the next character is whitespace; the terminator stays with the
// sentence and the whitespace run is consumed. Empty or whitespace-only
// input yields no sentences.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}

		// Skip the whitespace run following the terminator
		i++
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start = i
		i--
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
