// Package query turns raw storefront search strings into structured queries.
//
// A phrase like "shoes under 2000" should search for "shoes" with a price
// ceiling of 2000, not for products literally matching the word "under".
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
)

// Price-phrase patterns, in priority order. Only the first one that matches
// is applied; the amount is captured in group 1.
var pricePatterns = []*regexp.Regexp{
	// "under 2000", "below 2000", "less than 2000", "upto 2000", "up to 2000"
	regexp.MustCompile(`(?i)\b(?:under|below|less than|upto|up to)\s+(\d+(?:\.\d+)?)`),
	// "2000 or less", "2000 and less"
	regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+(?:or less|and less)\b`),
}

// Interpret separates an embedded price ceiling from a free-text query.
//
// When a price phrase is found and its amount parses to a positive number,
// the phrase is stripped from the text (preserving the casing of what
// remains) and the amount is returned as MaxPrice. A zero or unparseable
// amount means no price constraint: the trimmed input is returned verbatim,
// phrase included, and MaxPrice stays nil.
func Interpret(raw string) domain.ParsedQuery {
	for _, pat := range pricePatterns {
		m := pat.FindStringSubmatchIndex(raw)
		if m == nil {
			continue
		}

		amount, err := strconv.ParseFloat(raw[m[2]:m[3]], 64)
		if err != nil || amount <= 0 {
			break
		}

		cleaned := raw[:m[0]] + raw[m[1]:]
		cleaned = strings.Join(strings.Fields(cleaned), " ")
		return domain.ParsedQuery{TextQuery: cleaned, MaxPrice: &amount}
	}

	return domain.ParsedQuery{TextQuery: strings.TrimSpace(raw)}
}

// stopwords dropped before building the fallback token filter.
var stopwords = map[string]struct{}{
	"for": {}, "the": {}, "a": {}, "an": {}, "of": {},
	"and": {}, "or": {}, "to": {}, "in": {}, "on": {}, "with": {},
}

const maxFallbackTokens = 6

// Tokenize splits a text query into the tokens used by the regex fallback
// search: lower-cased, stop words removed, capped at six. An empty result
// means the caller should fall back to a single substring match instead.
func Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		if _, skip := stopwords[field]; skip {
			continue
		}
		tokens = append(tokens, field)
		if len(tokens) == maxFallbackTokens {
			break
		}
	}
	return tokens
}
