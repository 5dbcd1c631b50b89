package session

import (
	"math"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/grading"
)

// grade scores every item and aggregates the summary. The per-kind switch
// is exhaustive over the question union; the engine never sees an unknown
// kind because the bank codec rejects them at load time.
func grade(g *grading.Grader, items []Item) *Summary {
	var sum Summary
	for _, it := range items {
		switch q := it.Question.(type) {
		case *bank.MultipleChoice:
			sum.MCQ.Total++
			sum.MCQ.Max += q.Points
			got := 0.0
			if it.Selected == q.Correct {
				got = q.Points
				sum.MCQ.Correct++
			} else {
				sum.MCQ.Wrong++
			}
			sum.MCQ.Earned += got
			sum.Details = append(sum.Details, Detail{ID: q.ID, Got: got, Max: q.Points})

		case *bank.WrittenSingle:
			sum.Written.Total++
			sum.Written.Max += q.Points
			res := g.ScoreWrittenSingle(q, it.Text)
			sum.Written.Earned += res.Score
			countStatus(&sum.Written, g, res.Ratio)
			sum.Details = append(sum.Details, Detail{ID: q.ID, Got: res.Score, Max: q.Points, Ratio: res.Ratio})

		case *bank.WrittenList:
			sum.Written.Total++
			sum.Written.Max += q.Points
			res := g.ScoreWrittenList(q, it.Blanks, it.Hidden)
			sum.Written.Earned += res.Score
			countStatus(&sum.Written, g, avgRatio(res.Rows))
			sum.Details = append(sum.Details, Detail{ID: q.ID, Got: res.Score, Max: q.Points, Ratio: avgRatio(res.Rows), Rows: res.Rows})
		}
	}
	sum.MCQ.Earned = round2(sum.MCQ.Earned)
	sum.Written.Earned = round2(sum.Written.Earned)
	sum.Earned = round2(sum.MCQ.Earned + sum.Written.Earned)
	sum.Max = sum.MCQ.Max + sum.Written.Max
	return &sum
}

// countStatus classifies one written outcome with the grader's thresholds.
func countStatus(c *CategorySummary, g *grading.Grader, ratio float64) {
	switch {
	case ratio >= g.FullAt():
		c.Correct++
	case ratio >= g.PartialAt():
		c.Partial++
	default:
		c.Wrong++
	}
}

func avgRatio(rows []grading.Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range rows {
		total += r.Ratio
	}
	return total / float64(len(rows))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
