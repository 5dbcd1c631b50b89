// Package session runs test sessions around the assembly and grading
// engine: it snapshots assembled items, captures responses, grades on
// submit and tracks which questions have ever been served (coverage).
package session

import (
	"encoding/json"

	"github.com/quizforge/quizforge/internal/assemble"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/grading"
)

// Session is one test run from start to submit.
type Session struct {
	ID          string         `json:"id"`
	BankID      string         `json:"bank_id"`
	UserID      string         `json:"user_id"`
	Mode        assemble.Mode  `json:"mode"`
	Seed        string         `json:"seed,omitempty"`
	Status      string         `json:"status"` // in_progress|submitted
	Items       []Item         `json:"items"`
	StartedAt   int64          `json:"started_at"`
	Deadline    int64          `json:"deadline,omitempty"` // unix seconds, 0 = unlimited
	SubmittedAt int64          `json:"submitted_at,omitempty"`
	TimeUp      bool           `json:"time_up,omitempty"`
	Summary     *Summary       `json:"summary,omitempty"`
}

// Item is the persisted form of one assembled question plus its response
// state.
type Item struct {
	Question bank.Question

	Options  []bank.Option
	Slot     int
	Selected string

	Text string

	Shown  []bank.ListItem
	Hidden []bank.ListItem
	Blanks []string
}

type itemWire struct {
	Question json.RawMessage `json:"question"`
	Options  []bank.Option   `json:"options,omitempty"`
	Slot     int             `json:"slot,omitempty"`
	Selected string          `json:"selected,omitempty"`
	Text     string          `json:"text,omitempty"`
	Shown    []bank.ListItem `json:"shown,omitempty"`
	Hidden   []bank.ListItem `json:"hidden,omitempty"`
	Blanks   []string        `json:"blanks,omitempty"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	q, err := bank.EncodeQuestion(it.Question)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemWire{
		Question: q,
		Options:  it.Options,
		Slot:     it.Slot,
		Selected: it.Selected,
		Text:     it.Text,
		Shown:    it.Shown,
		Hidden:   it.Hidden,
		Blanks:   it.Blanks,
	})
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	q, err := bank.DecodeQuestion(w.Question)
	if err != nil {
		return err
	}
	it.Question = q
	it.Options = w.Options
	it.Slot = w.Slot
	it.Selected = w.Selected
	it.Text = w.Text
	it.Shown = w.Shown
	it.Hidden = w.Hidden
	it.Blanks = w.Blanks
	return nil
}

// Response carries a user's answer for one question; the field used
// depends on the question kind.
type Response struct {
	Selected string   `json:"selected,omitempty"`
	Text     string   `json:"text,omitempty"`
	Blanks   []string `json:"blanks,omitempty"`
}

// Responses maps question id to the user's answer.
type Responses map[int]Response

// CategorySummary aggregates one question category.
type CategorySummary struct {
	Max     float64 `json:"max"`
	Earned  float64 `json:"earned"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Partial int     `json:"partial,omitempty"`
	Wrong   int     `json:"wrong"`
}

// Detail is the per-question grading outcome.
type Detail struct {
	ID    int           `json:"id"`
	Got   float64       `json:"got"`
	Max   float64       `json:"max"`
	Ratio float64       `json:"ratio,omitempty"`
	Rows  []grading.Row `json:"rows,omitempty"`
}

// Summary is the graded result of a submitted session.
type Summary struct {
	Earned  float64         `json:"earned"`
	Max     float64         `json:"max"`
	MCQ     CategorySummary `json:"mcq"`
	Written CategorySummary `json:"written"`
	Details []Detail        `json:"details"`
}
