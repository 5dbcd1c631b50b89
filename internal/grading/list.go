package grading

import (
	"strings"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/textmatch"
)

// Row reviews one matched blank.
type Row struct {
	User     string  `json:"user"`
	Expected string  `json:"expected"`
	Ratio    float64 `json:"ratio"`
	OKFull   bool    `json:"ok_full"`
}

// ListResult is the outcome of grading one written-list answer.
type ListResult struct {
	Score   float64 `json:"score"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Rows    []Row   `json:"rows"`
}

// ScoreWrittenList grades userBlanks against required, the hidden subset
// the test-taker had to fill (fixed at assembly time). Order-sensitive
// questions pair blanks positionally; otherwise a greedy pass repeatedly
// pairs the globally most similar unmatched blank/item. Greedy ties break
// by scan order: lowest blank index first, then lowest item index. Leftover
// blanks or items pad the rows with zero similarity so len(Rows) == Total.
func (g *Grader) ScoreWrittenList(q *bank.WrittenList, userBlanks []string, required []bank.ListItem) ListResult {
	total := len(required)
	users := make([]string, total)
	for i := range users {
		if i < len(userBlanks) {
			users[i] = strings.TrimSpace(userBlanks[i])
		}
	}

	var rows []Row
	if q.OrderSensitive {
		rows = make([]Row, total)
		for i, u := range users {
			ratio := itemSimilarity(u, required[i])
			rows[i] = Row{User: u, Expected: required[i].Value, Ratio: ratio, OKFull: ratio >= g.fullAt}
		}
	} else {
		rows = g.greedyRows(users, required)
	}

	sum := 0.0
	correct := 0
	for _, r := range rows {
		if r.OKFull {
			sum++
			correct++
		} else {
			sum += g.unitCredit(r.Ratio)
		}
	}
	denom := total
	if denom < 1 {
		denom = 1
	}
	return ListResult{
		Score:   round2(q.Points * sum / float64(denom)),
		Correct: correct,
		Total:   total,
		Rows:    rows,
	}
}

// greedyRows builds the full similarity matrix and drains it best-pair
// first. O(n²) per pick is fine at quiz sizes.
func (g *Grader) greedyRows(users []string, required []bank.ListItem) []Row {
	total := len(required)
	sims := make([][]float64, len(users))
	for i, u := range users {
		sims[i] = make([]float64, total)
		for j, item := range required {
			sims[i][j] = itemSimilarity(u, item)
		}
	}

	usedU := make([]bool, len(users))
	usedR := make([]bool, total)
	rows := make([]Row, 0, total)
	for len(rows) < total {
		bestU, bestR, bestS := -1, -1, -1.0
		for i := range users {
			if usedU[i] {
				continue
			}
			for j := range required {
				if usedR[j] {
					continue
				}
				if sims[i][j] > bestS {
					bestU, bestR, bestS = i, j, sims[i][j]
				}
			}
		}
		if bestU == -1 || bestR == -1 {
			break
		}
		usedU[bestU] = true
		usedR[bestR] = true
		rows = append(rows, Row{
			User:     users[bestU],
			Expected: required[bestR].Value,
			Ratio:    bestS,
			OKFull:   bestS >= g.fullAt,
		})
	}

	// Pad unpaired positions in original order with zero-similarity rows.
	for len(rows) < total {
		idx := len(rows)
		u := ""
		if idx < len(users) {
			u = users[idx]
		}
		rows = append(rows, Row{User: u, Expected: required[idx].Value})
	}
	return rows
}

// itemSimilarity scores one blank against one required item: exact
// normalized match on the value or any synonym is 1, otherwise the best
// variant similarity over value plus synonyms. Empty input scores 0 so a
// blank column cannot collect ramp credit.
func itemSimilarity(user string, item bank.ListItem) float64 {
	if user == "" {
		return 0
	}
	nu := textmatch.Normalize(user)
	if nu == textmatch.Normalize(item.Value) {
		return 1
	}
	for _, s := range item.Synonyms {
		if nu == textmatch.Normalize(s) {
			return 1
		}
	}
	variants := append([]string{item.Value}, item.Synonyms...)
	sim := textmatch.BestVariantSimilarity(user, variants)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

