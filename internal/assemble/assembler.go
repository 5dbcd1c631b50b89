package assemble

import (
	"fmt"

	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/rng"
	"github.com/quizforge/quizforge/internal/selection"
)

// scores within this distance of the maximum count as fully answered when
// collecting previously-missed questions
const fullScoreEpsilon = 1e-6

// Options are the inputs of one assembly run.
type Options struct {
	Mode   Mode
	Bank   *bank.Bank
	RNG    *rng.RNG
	Bags   selection.BagStore
	Config Config
	// Grader decides which previous items count as wrong in practice mode.
	Grader *grading.Grader
	// LastItems are the previous run's items, required for ModePracticeWrong.
	LastItems []TestItem
}

// StartTest assembles a test. If a category cannot fill its quota even
// after a refill (small bank), the test simply comes out shorter; that is
// an accepted degradation, not an error.
func StartTest(opts Options) ([]TestItem, error) {
	if opts.Bank == nil || opts.RNG == nil || opts.Bags == nil {
		return nil, fmt.Errorf("assemble: bank, rng and bag store are required")
	}
	cfg := opts.Config
	r := opts.RNG

	bags, err := selection.BuildBags(opts.Bags, opts.Bank)
	if err != nil {
		return nil, err
	}
	mcqAll := opts.Bank.MCQIDs()
	writtenAll := opts.Bank.WrittenIDs()

	var mcqIDs, writtenIDs []int
	switch opts.Mode {
	case ModePracticeWrong:
		mcqIDs, writtenIDs = practiceDraw(opts, bags, mcqAll, writtenAll)
	default:
		mcqBag := selection.RefillIfNeeded(bags.MCQ, cfg.MCQPerTest, mcqAll, r)
		writtenBag := selection.RefillIfNeeded(bags.Written, cfg.WrittenPerTest, writtenAll, r)
		var mcqRest, writtenRest []int
		mcqIDs, mcqRest = selection.TakeFromBag(mcqBag, cfg.MCQPerTest)
		writtenIDs, writtenRest = selection.TakeFromBag(writtenBag, cfg.WrittenPerTest)
		if err := opts.Bags.SaveBag(selection.KeyMCQ, mcqRest); err != nil {
			return nil, err
		}
		if err := opts.Bags.SaveBag(selection.KeyWritten, writtenRest); err != nil {
			return nil, err
		}
	}

	items := make([]TestItem, 0, len(mcqIDs)+len(writtenIDs))
	for _, id := range mcqIDs {
		q, ok := opts.Bank.Get(id)
		if !ok {
			continue // stale bag entry after a bank update
		}
		mcq, ok := q.(*bank.MultipleChoice)
		if !ok {
			continue
		}
		items = append(items, prepareMCQ(mcq, r))
	}
	for _, id := range writtenIDs {
		q, ok := opts.Bank.Get(id)
		if !ok {
			continue
		}
		switch t := q.(type) {
		case *bank.WrittenSingle:
			items = append(items, TestItem{Question: t})
		case *bank.WrittenList:
			shown, hidden := partitionList(t, r, cfg)
			items = append(items, TestItem{
				Question: t,
				Shown:    shown,
				Hidden:   hidden,
				Blanks:   make([]string, len(hidden)),
			})
		}
	}

	// One final shuffle so question kinds do not cluster.
	return rng.Shuffle(r, items), nil
}

// practiceDraw collects ids the user previously missed, shuffles and caps
// them at the quotas, and tops up from the rotation bags without saving.
func practiceDraw(opts Options, bags selection.Bags, mcqAll, writtenAll []int) (mcqIDs, writtenIDs []int) {
	cfg := opts.Config
	r := opts.RNG
	g := opts.Grader
	if g == nil {
		g = grading.New()
	}

	var wrongMCQ, wrongWritten []int
	seenWritten := map[int]struct{}{}
	for _, it := range opts.LastItems {
		switch q := it.Question.(type) {
		case *bank.MultipleChoice:
			if it.Selected != q.Correct {
				wrongMCQ = append(wrongMCQ, q.ID)
			}
		case *bank.WrittenSingle:
			if res := g.ScoreWrittenSingle(q, it.Text); res.Score < q.Points-fullScoreEpsilon {
				if _, dup := seenWritten[q.ID]; !dup {
					seenWritten[q.ID] = struct{}{}
					wrongWritten = append(wrongWritten, q.ID)
				}
			}
		case *bank.WrittenList:
			if res := g.ScoreWrittenList(q, it.Blanks, it.Hidden); res.Score < q.Points-fullScoreEpsilon {
				if _, dup := seenWritten[q.ID]; !dup {
					seenWritten[q.ID] = struct{}{}
					wrongWritten = append(wrongWritten, q.ID)
				}
			}
		}
	}

	mcqIDs = capIDs(rng.Shuffle(r, wrongMCQ), cfg.MCQPerTest)
	if missing := cfg.MCQPerTest - len(mcqIDs); missing > 0 {
		bag := selection.RefillIfNeeded(bags.MCQ, missing, mcqAll, r)
		taken, _ := selection.TakeFromBag(bag, missing)
		mcqIDs = append(mcqIDs, taken...)
	}

	writtenIDs = capIDs(rng.Shuffle(r, wrongWritten), cfg.WrittenPerTest)
	if missing := cfg.WrittenPerTest - len(writtenIDs); missing > 0 {
		bag := selection.RefillIfNeeded(bags.Written, missing, writtenAll, r)
		taken, _ := selection.TakeFromBag(bag, missing)
		writtenIDs = append(writtenIDs, taken...)
	}
	return mcqIDs, writtenIDs
}

func capIDs(ids []int, n int) []int {
	if len(ids) > n {
		return ids[:n]
	}
	return ids
}

// prepareMCQ draws the target slot for the correct option and arranges the
// rest around it. The slot draw happens even for fixed-order questions so
// the stream position stays comparable across banks.
func prepareMCQ(q *bank.MultipleChoice, r *rng.RNG) TestItem {
	n := len(q.Options)
	slot := 1
	if n > 0 {
		slot = 1 + r.IntN(n)
	}
	if q.NoShuffle {
		opts := make([]bank.Option, n)
		copy(opts, q.Options)
		for i, o := range opts {
			if o.ID == q.Correct {
				slot = i + 1
				break
			}
		}
		return TestItem{Question: q, Options: opts, Slot: slot}
	}
	return TestItem{Question: q, Options: arrangeOptions(q, r, slot), Slot: slot}
}

// arrangeOptions places the correct option at the 1-based slot and fills
// the remaining positions with a shuffled ordering of the others.
func arrangeOptions(q *bank.MultipleChoice, r *rng.RNG, slot int) []bank.Option {
	if slot < 1 {
		slot = 1
	}
	if slot > len(q.Options) {
		slot = len(q.Options)
	}
	var correct bank.Option
	others := make([]bank.Option, 0, len(q.Options)-1)
	for _, o := range q.Options {
		if o.ID == q.Correct {
			correct = o
		} else {
			others = append(others, o)
		}
	}
	shuffled := rng.Shuffle(r, others)

	arranged := make([]bank.Option, len(q.Options))
	arranged[slot-1] = correct
	k := 0
	for i := range arranged {
		if i == slot-1 {
			continue
		}
		arranged[i] = shuffled[k]
		k++
	}
	return arranged
}

// partitionList splits a list question into revealed and hidden items.
// Both halves keep the authored order; only the choice of revealed indexes
// is random.
func partitionList(q *bank.WrittenList, r *rng.RNG, cfg Config) (shown, hidden []bank.ListItem) {
	full := q.Items
	if len(full) == 0 {
		return nil, nil
	}
	switch cfg.RevealMode {
	case RevealNone:
		hidden = make([]bank.ListItem, len(full))
		copy(hidden, full)
		return nil, hidden
	case RevealOne:
		idx := r.IntN(len(full))
		for i, it := range full {
			if i == idx {
				shown = append(shown, it)
			} else {
				hidden = append(hidden, it)
			}
		}
		return shown, hidden
	default:
		ratio := q.ShowRatio
		if ratio <= 0 {
			ratio = cfg.RevealRatioDefault
		}
		count := int(float64(len(full))*ratio + 0.5)
		if count < 1 {
			count = 1
		}
		if count > len(full) {
			count = len(full)
		}
		idxs := make([]int, len(full))
		for i := range idxs {
			idxs[i] = i
		}
		chosen := map[int]struct{}{}
		for _, i := range rng.Shuffle(r, idxs)[:count] {
			chosen[i] = struct{}{}
		}
		for i, it := range full {
			if _, ok := chosen[i]; ok {
				shown = append(shown, it)
			} else {
				hidden = append(hidden, it)
			}
		}
		return shown, hidden
	}
}
