package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/assemble"
	"github.com/quizforge/quizforge/internal/audit"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/rng"
	"github.com/quizforge/quizforge/internal/selection"
)

var (
	ErrSubmitted = errors.New("session already submitted")
	ErrTimeUp    = errors.New("session time limit reached")
)

// Service orchestrates sessions over the bank, bag and session stores.
type Service struct {
	banks    bank.Store
	bags     selection.BagStore
	store    Store
	grader   *grading.Grader
	asmCfg   assemble.Config
	timeLimit time.Duration // 0 = unlimited
	audit    audit.Log
	now      func() time.Time
}

func NewService(banks bank.Store, bags selection.BagStore, store Store, grader *grading.Grader, asmCfg assemble.Config, timeLimit time.Duration) *Service {
	return &Service{
		banks:     banks,
		bags:      bags,
		store:     store,
		grader:    grader,
		asmCfg:    asmCfg,
		timeLimit: timeLimit,
		audit:     audit.Nop{},
		now:       time.Now,
	}
}

// WithAudit routes state-changing actions into the given log.
func (s *Service) WithAudit(l audit.Log) *Service {
	s.audit = l
	return s
}

// StartRequest describes a new session.
type StartRequest struct {
	BankID      string        `json:"bank_id"`
	Mode        assemble.Mode `json:"mode,omitempty"`
	Seed        string        `json:"seed,omitempty"`
	PrevSession string        `json:"prev_session,omitempty"` // for practice_wrong
}

// Start assembles a test and opens a session for it.
func (s *Service) Start(userID string, req StartRequest) (Session, error) {
	b, err := s.banks.GetBank(req.BankID)
	if err != nil {
		return Session{}, err
	}
	mode := req.Mode
	if mode == "" {
		mode = assemble.ModeNormal
	}

	var last []assemble.TestItem
	if mode == assemble.ModePracticeWrong {
		if req.PrevSession == "" {
			return Session{}, fmt.Errorf("practice_wrong requires prev_session")
		}
		prev, err := s.store.Get(req.PrevSession)
		if err != nil {
			return Session{}, err
		}
		last = toTestItems(prev.Items)
	}

	items, err := assemble.StartTest(assemble.Options{
		Mode:      mode,
		Bank:      b,
		RNG:       rng.New(req.Seed),
		Bags:      s.bags,
		Config:    s.asmCfg,
		Grader:    s.grader,
		LastItems: last,
	})
	if err != nil {
		return Session{}, err
	}

	served := make([]int, 0, len(items))
	for _, it := range items {
		served = append(served, it.Question.Base().ID)
	}
	// Coverage is bookkeeping; a failed write must not block the session.
	_ = s.store.AddCoverage(served)

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		BankID:    req.BankID,
		UserID:    userID,
		Mode:      mode,
		Seed:      req.Seed,
		Status:    "in_progress",
		Items:     fromTestItems(items),
		StartedAt: now.Unix(),
	}
	if s.timeLimit > 0 {
		sess.Deadline = now.Add(s.timeLimit).Unix()
	}
	if err := s.store.Put(sess); err != nil {
		return Session{}, err
	}
	_ = s.audit.Append(context.Background(), audit.Event{
		Type: "SessionStarted", Key: sess.ID, Actor: userID,
	})
	return sess, nil
}

// SaveResponses records answers for an open session. Writes after the
// deadline or after submission are refused.
func (s *Service) SaveResponses(sessionID string, resp Responses) (Session, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Status != "in_progress" {
		return Session{}, ErrSubmitted
	}
	if sess.Deadline > 0 && s.now().Unix() > sess.Deadline {
		return Session{}, ErrTimeUp
	}
	for i := range sess.Items {
		r, ok := resp[sess.Items[i].Question.Base().ID]
		if !ok {
			continue
		}
		switch sess.Items[i].Question.(type) {
		case *bank.MultipleChoice:
			sess.Items[i].Selected = r.Selected
		case *bank.WrittenSingle:
			sess.Items[i].Text = r.Text
		case *bank.WrittenList:
			blanks := make([]string, len(sess.Items[i].Hidden))
			copy(blanks, r.Blanks)
			sess.Items[i].Blanks = blanks
		}
	}
	if err := s.store.Put(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Submit grades the session. Submitting twice returns the stored result.
// A submit past the deadline is accepted but flagged.
func (s *Service) Submit(sessionID string) (Session, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Status == "submitted" {
		return sess, nil
	}
	now := s.now()
	sess.Status = "submitted"
	sess.SubmittedAt = now.Unix()
	if sess.Deadline > 0 && now.Unix() > sess.Deadline {
		sess.TimeUp = true
	}
	sess.Summary = grade(s.grader, sess.Items)
	if err := s.store.Put(sess); err != nil {
		return Session{}, err
	}
	_ = s.audit.Append(context.Background(), audit.Event{
		Type: "SessionSubmitted", Key: sess.ID, Actor: sess.UserID,
		DataJSON: fmt.Sprintf(`{"earned":%.2f,"max":%.2f}`, sess.Summary.Earned, sess.Summary.Max),
	})
	return sess, nil
}

// Get returns a session by id.
func (s *Service) Get(sessionID string) (Session, error) {
	return s.store.Get(sessionID)
}

// CoverageInfo reports how much of a bank has ever been served.
type CoverageInfo struct {
	Served int `json:"served"`
	Total  int `json:"total"`
}

// Coverage counts served questions against the bank size.
func (s *Service) Coverage(bankID string) (CoverageInfo, error) {
	b, err := s.banks.GetBank(bankID)
	if err != nil {
		return CoverageInfo{}, err
	}
	ids, err := s.store.CoverageIDs()
	if err != nil {
		return CoverageInfo{}, err
	}
	served := 0
	for _, id := range ids {
		if _, ok := b.Get(id); ok {
			served++
		}
	}
	return CoverageInfo{Served: served, Total: b.Len()}, nil
}

// ResetCoverage clears the served-question log.
func (s *Service) ResetCoverage() error {
	if err := s.store.ResetCoverage(); err != nil {
		return err
	}
	_ = s.audit.Append(context.Background(), audit.Event{Type: "CoverageReset"})
	return nil
}

func fromTestItems(items []assemble.TestItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{
			Question: it.Question,
			Options:  it.Options,
			Slot:     it.Slot,
			Selected: it.Selected,
			Text:     it.Text,
			Shown:    it.Shown,
			Hidden:   it.Hidden,
			Blanks:   it.Blanks,
		}
	}
	return out
}

func toTestItems(items []Item) []assemble.TestItem {
	out := make([]assemble.TestItem, len(items))
	for i, it := range items {
		out[i] = assemble.TestItem{
			Question: it.Question,
			Options:  it.Options,
			Slot:     it.Slot,
			Selected: it.Selected,
			Text:     it.Text,
			Shown:    it.Shown,
			Hidden:   it.Hidden,
			Blanks:   it.Blanks,
		}
	}
	return out
}
