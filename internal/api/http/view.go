package http

import (
	"github.com/quizforge/quizforge/internal/assemble"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/session"
)

// itemView is one served question as the client sees it. While the session
// is open the answer key stays server-side; after submit the key fields are
// filled in for review.
type itemView struct {
	ID     int       `json:"id"`
	Kind   bank.Kind `json:"kind"`
	Points float64   `json:"points"`
	Prompt string    `json:"prompt"`

	Options  []bank.Option `json:"options,omitempty"`
	Selected string        `json:"selected,omitempty"`

	Text string `json:"text,omitempty"`

	Shown  []string `json:"shown,omitempty"`
	BlankN int      `json:"blank_count,omitempty"`
	Blanks []string `json:"blanks,omitempty"`

	// Review fields, present only on submitted sessions.
	Correct  string   `json:"correct,omitempty"`
	Variants []string `json:"variants,omitempty"`
	Hidden   []string `json:"hidden,omitempty"`
}

type sessionView struct {
	ID          string           `json:"id"`
	BankID      string           `json:"bank_id"`
	Mode        assemble.Mode    `json:"mode"`
	Status      string           `json:"status"`
	StartedAt   int64            `json:"started_at"`
	Deadline    int64            `json:"deadline,omitempty"`
	SubmittedAt int64            `json:"submitted_at,omitempty"`
	TimeUp      bool             `json:"time_up,omitempty"`
	Items       []itemView       `json:"items"`
	Summary     *session.Summary `json:"summary,omitempty"`
}

func viewOf(sess session.Session) sessionView {
	submitted := sess.Status == "submitted"
	v := sessionView{
		ID:          sess.ID,
		BankID:      sess.BankID,
		Mode:        sess.Mode,
		Status:      sess.Status,
		StartedAt:   sess.StartedAt,
		Deadline:    sess.Deadline,
		SubmittedAt: sess.SubmittedAt,
		TimeUp:      sess.TimeUp,
		Summary:     sess.Summary,
	}
	for _, it := range sess.Items {
		iv := itemView{
			ID:     it.Question.Base().ID,
			Kind:   it.Question.Kind(),
			Points: it.Question.Base().Points,
			Prompt: it.Question.Base().Prompt,
		}
		switch q := it.Question.(type) {
		case *bank.MultipleChoice:
			iv.Options = it.Options
			iv.Selected = it.Selected
			if submitted {
				iv.Correct = q.Correct
			}
		case *bank.WrittenSingle:
			iv.Text = it.Text
			if submitted {
				iv.Variants = q.Variants
			}
		case *bank.WrittenList:
			for _, item := range it.Shown {
				iv.Shown = append(iv.Shown, item.Value)
			}
			iv.BlankN = len(it.Hidden)
			iv.Blanks = it.Blanks
			if submitted {
				for _, item := range it.Hidden {
					iv.Hidden = append(iv.Hidden, item.Value)
				}
			}
		}
		v.Items = append(v.Items, iv)
	}
	return v
}
