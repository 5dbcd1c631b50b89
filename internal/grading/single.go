package grading

import (
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/textmatch"
)

// SingleResult is the outcome of grading one written-single answer.
type SingleResult struct {
	Score float64 `json:"score"`
	Ratio float64 `json:"ratio"`
}

// ScoreWrittenSingle grades user against the question's accepted variants.
// With fuzzy acceptance off the answer must match a variant exactly after
// normalization; with it on, the best variant similarity runs through the
// partial-credit ramp.
func (g *Grader) ScoreWrittenSingle(q *bank.WrittenSingle, user string) SingleResult {
	allowFuzzy := g.fuzzyDefault
	if q.AllowFuzzy != nil {
		allowFuzzy = *q.AllowFuzzy
	}
	variants := q.Variants
	if len(variants) == 0 {
		variants = []string{""}
	}

	if !allowFuzzy {
		nu := textmatch.Normalize(user)
		for _, v := range variants {
			if textmatch.Normalize(v) == nu {
				return SingleResult{Score: q.Points, Ratio: 1}
			}
		}
		return SingleResult{Score: 0, Ratio: 0}
	}

	sim := textmatch.BestVariantSimilarity(user, variants)
	switch {
	case sim >= g.fullAt:
		return SingleResult{Score: q.Points, Ratio: sim}
	case sim >= g.partialAt:
		return SingleResult{Score: round2(q.Points * g.unitCredit(sim)), Ratio: sim}
	default:
		return SingleResult{Score: 0, Ratio: sim}
	}
}
