package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/assemble"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/selection"
)

func testBank() []bank.Question {
	var qs []bank.Question
	for i := 1; i <= 4; i++ {
		qs = append(qs, &bank.MultipleChoice{
			Common: bank.Common{ID: i, Points: 1, Prompt: "pick"},
			Options: []bank.Option{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
				{ID: "c", Text: "also wrong"},
			},
			Correct: "a",
		})
	}
	for i := 10; i <= 12; i++ {
		qs = append(qs, &bank.WrittenSingle{
			Common:   bank.Common{ID: i, Points: 2, Prompt: "name it"},
			Variants: []string{"photosynthesis"},
		})
	}
	qs = append(qs, &bank.WrittenList{
		Common: bank.Common{ID: 20, Points: 3, Prompt: "list them"},
		Items: []bank.ListItem{
			{Value: "solid"}, {Value: "liquid"}, {Value: "gas"},
		},
	})
	return qs
}

func newTestService(t *testing.T) (*Service, Store) {
	t.Helper()
	banks := bank.NewMemoryStore()
	if err := banks.PutBank("bio", testBank()); err != nil {
		t.Fatalf("put bank: %v", err)
	}
	store := NewMemoryStore()
	cfg := assemble.Config{
		MCQPerTest:         2,
		WrittenPerTest:     2,
		RevealMode:         assemble.RevealOne,
		RevealRatioDefault: 0.25,
	}
	svc := NewService(banks, selection.NewMemoryBagStore(), store, grading.New(), cfg, time.Hour)
	return svc, store
}

func answerAll(sess Session, correct bool) Responses {
	resp := Responses{}
	for _, it := range sess.Items {
		switch q := it.Question.(type) {
		case *bank.MultipleChoice:
			sel := q.Correct
			if !correct {
				for _, o := range q.Options {
					if o.ID != q.Correct {
						sel = o.ID
						break
					}
				}
			}
			resp[q.ID] = Response{Selected: sel}
		case *bank.WrittenSingle:
			text := q.Variants[0]
			if !correct {
				text = "zzzzzz"
			}
			resp[q.ID] = Response{Text: text}
		case *bank.WrittenList:
			blanks := make([]string, len(it.Hidden))
			for i, item := range it.Hidden {
				if correct {
					blanks[i] = item.Value
				} else {
					blanks[i] = "zzzzzz"
				}
			}
			resp[q.ID] = Response{Blanks: blanks}
		}
	}
	return resp
}

func TestStartSaveSubmitFlow(t *testing.T) {
	svc, _ := newTestService(t)
	base := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return base }

	sess, err := svc.Start("student-1", StartRequest{BankID: "bio", Seed: "flow"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Status != "in_progress" {
		t.Fatalf("status = %q", sess.Status)
	}
	if len(sess.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(sess.Items))
	}
	if sess.Deadline != base.Add(time.Hour).Unix() {
		t.Fatalf("deadline = %d", sess.Deadline)
	}

	saved, err := svc.SaveResponses(sess.ID, answerAll(sess, true))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	done, err := svc.Submit(saved.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Status != "submitted" || done.Summary == nil {
		t.Fatalf("not graded: status=%q summary=%v", done.Status, done.Summary)
	}
	if done.Summary.Earned != done.Summary.Max {
		t.Fatalf("perfect answers earned %.2f of %.2f", done.Summary.Earned, done.Summary.Max)
	}
	if done.TimeUp {
		t.Fatal("on-time submit flagged as time up")
	}

	// Submitting again returns the stored result unchanged.
	again, err := svc.Submit(done.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if again.SubmittedAt != done.SubmittedAt {
		t.Fatal("resubmit changed the session")
	}

	if _, err := svc.SaveResponses(done.ID, Responses{}); err != ErrSubmitted {
		t.Fatalf("save after submit: err = %v, want ErrSubmitted", err)
	}
}

func TestDeadlineEnforcement(t *testing.T) {
	svc, _ := newTestService(t)
	base := time.Unix(1_700_000_000, 0)
	now := base
	svc.now = func() time.Time { return now }

	sess, err := svc.Start("student-1", StartRequest{BankID: "bio", Seed: "late"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	now = base.Add(2 * time.Hour)
	if _, err := svc.SaveResponses(sess.ID, answerAll(sess, true)); err != ErrTimeUp {
		t.Fatalf("late save: err = %v, want ErrTimeUp", err)
	}

	done, err := svc.Submit(sess.ID)
	if err != nil {
		t.Fatalf("late submit: %v", err)
	}
	if !done.TimeUp {
		t.Fatal("late submit not flagged")
	}
	if done.Summary == nil {
		t.Fatal("late submit not graded")
	}
}

func TestPracticeWrongFromPrevSession(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Start("student-1", StartRequest{BankID: "bio", Seed: "p1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SaveResponses(first.ID, answerAll(first, false)); err != nil {
		t.Fatalf("save: %v", err)
	}
	done, err := svc.Submit(first.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Summary.Earned != 0 {
		t.Fatalf("all-wrong answers earned %.2f", done.Summary.Earned)
	}

	retry, err := svc.Start("student-1", StartRequest{
		BankID:      "bio",
		Mode:        assemble.ModePracticeWrong,
		Seed:        "p2",
		PrevSession: done.ID,
	})
	if err != nil {
		t.Fatalf("practice start: %v", err)
	}
	if retry.Mode != assemble.ModePracticeWrong {
		t.Fatalf("mode = %q", retry.Mode)
	}
	if len(retry.Items) == 0 {
		t.Fatal("practice session has no items")
	}

	if _, err := svc.Start("student-1", StartRequest{BankID: "bio", Mode: assemble.ModePracticeWrong}); err == nil {
		t.Fatal("practice_wrong without prev_session accepted")
	}
}

func TestCoverageTracking(t *testing.T) {
	svc, _ := newTestService(t)

	before, err := svc.Coverage("bio")
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if before.Served != 0 || before.Total != 8 {
		t.Fatalf("fresh coverage = %+v", before)
	}

	sess, err := svc.Start("student-1", StartRequest{BankID: "bio", Seed: "cov"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	after, err := svc.Coverage("bio")
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if after.Served != len(sess.Items) {
		t.Fatalf("served = %d, want %d", after.Served, len(sess.Items))
	}

	if err := svc.ResetCoverage(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	cleared, err := svc.Coverage("bio")
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	if cleared.Served != 0 {
		t.Fatalf("served after reset = %d", cleared.Served)
	}
}

func TestItemJSONRoundTrip(t *testing.T) {
	items := []Item{
		{
			Question: &bank.MultipleChoice{
				Common:  bank.Common{ID: 1, Points: 1, Prompt: "pick"},
				Options: []bank.Option{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}},
				Correct: "a",
			},
			Options:  []bank.Option{{ID: "b", Text: "y"}, {ID: "a", Text: "x"}},
			Slot:     2,
			Selected: "a",
		},
		{
			Question: &bank.WrittenList{
				Common: bank.Common{ID: 20, Points: 3, Prompt: "list"},
				Items:  []bank.ListItem{{Value: "solid"}, {Value: "gas"}},
			},
			Shown:  []bank.ListItem{{Value: "solid"}},
			Hidden: []bank.ListItem{{Value: "gas"}},
			Blanks: []string{"gas"},
		},
	}

	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []Item
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("items = %d", len(back))
	}
	mc, ok := back[0].Question.(*bank.MultipleChoice)
	if !ok || mc.Correct != "a" || back[0].Slot != 2 || back[0].Selected != "a" {
		t.Fatalf("mcq item lost state: %+v", back[0])
	}
	wl, ok := back[1].Question.(*bank.WrittenList)
	if !ok || len(wl.Items) != 2 || len(back[1].Hidden) != 1 || back[1].Blanks[0] != "gas" {
		t.Fatalf("list item lost state: %+v", back[1])
	}
}

func TestSubmitGradesPerCategory(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.Start("student-1", StartRequest{BankID: "bio", Seed: "partial"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Answer the MCQs wrong and the written questions right.
	resp := Responses{}
	for _, it := range sess.Items {
		switch q := it.Question.(type) {
		case *bank.MultipleChoice:
			resp[q.ID] = Response{Selected: "nope"}
		case *bank.WrittenSingle:
			resp[q.ID] = Response{Text: q.Variants[0]}
		case *bank.WrittenList:
			blanks := make([]string, len(it.Hidden))
			for i, item := range it.Hidden {
				blanks[i] = item.Value
			}
			resp[q.ID] = Response{Blanks: blanks}
		}
	}
	if _, err := svc.SaveResponses(sess.ID, resp); err != nil {
		t.Fatalf("save: %v", err)
	}
	done, err := svc.Submit(sess.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Summary.MCQ.Earned != 0 || done.Summary.MCQ.Wrong != done.Summary.MCQ.Total {
		t.Fatalf("mcq summary = %+v", done.Summary.MCQ)
	}
	if done.Summary.Written.Earned != done.Summary.Written.Max {
		t.Fatalf("written summary = %+v", done.Summary.Written)
	}
	if len(done.Summary.Details) != len(done.Items) {
		t.Fatalf("details = %d, want %d", len(done.Summary.Details), len(done.Items))
	}
}
