package relevance

import "strings"

var stopWords = map[string]bool{
	"the":  true,
	"and":  true,
	"for":  true,
	"with": true,
	"from": true,
	"this": true,
	"that": true,
	"new":  true,
	"has":  true,
	"are":  true,
	"its":  true,
}

// Tokenize lower-cases, strips punctuation, splits on whitespace and drops
// short tokens and stop words.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	var tokens []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) < 2 || stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// topTerms returns the most informative query terms, longest first, capped
// at limit. Longer tokens carry the model numbers and brand names that
// matter for comparables.
func topTerms(tokens []string, limit int) []string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && len(sorted[j]) > len(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
