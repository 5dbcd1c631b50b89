// Package textmatch implements the text normalization and fuzzy similarity
// used to grade free-text answers.
package textmatch

import "strings"

// Punctuation replaced with spaces during normalization.
const punctuation = ".,;:!?()[]{}"

// Stopwords dropped from token similarity. The bank is Georgian-language;
// these inflections carry no answer signal.
var stopwords = map[string]struct{}{
	"ძალა":   {},
	"ძალები": {},
}

// Normalize lowercases s, folds smart quotes and dashes to their ASCII
// forms, replaces punctuation with spaces, collapses whitespace and trims.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case '‘', '’', '‚', '‛', '′':
			b.WriteRune('\'')
		case '“', '”', '„', '‟', '″':
			b.WriteRune('"')
		case '–', '—', '−':
			b.WriteRune('-')
		default:
			if strings.ContainsRune(punctuation, r) {
				b.WriteRune(' ')
			} else {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens normalizes s and splits it into non-empty tokens.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// TokensNoStopwords is Tokens with the stopword set removed.
func TokensNoStopwords(s string) []string {
	all := Tokens(s)
	out := all[:0]
	for _, t := range all {
		if _, ok := stopwords[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
