package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizforge/quizforge/internal/assemble"
)

// SQLStore keeps sessions and the coverage log in SQL. Sessions are one
// row each with the item snapshot and summary as JSON; coverage is one
// row per question ever served.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Put(sess Session) error {
	items, err := json.Marshal(sess.Items)
	if err != nil {
		return err
	}
	var summary any
	if sess.Summary != nil {
		data, err := json.Marshal(sess.Summary)
		if err != nil {
			return err
		}
		summary = string(data)
	}
	_, err = s.db.Exec(`INSERT INTO sessions
		(id, bank_id, user_id, mode, seed, status, items_json, summary_json,
		 started_at, deadline, submitted_at, time_up)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			status=EXCLUDED.status,
			items_json=EXCLUDED.items_json,
			summary_json=EXCLUDED.summary_json,
			submitted_at=EXCLUDED.submitted_at,
			time_up=EXCLUDED.time_up`,
		sess.ID, sess.BankID, sess.UserID, string(sess.Mode), sess.Seed,
		sess.Status, string(items), summary,
		sess.StartedAt, sess.Deadline, sess.SubmittedAt, sess.TimeUp)
	return err
}

func (s *SQLStore) Get(id string) (Session, error) {
	var (
		sess    Session
		mode    string
		items   string
		summary sql.NullString
	)
	err := s.db.QueryRow(`SELECT id, bank_id, user_id, mode, seed, status,
		items_json, summary_json, started_at, deadline, submitted_at, time_up
		FROM sessions WHERE id=$1`, id).Scan(
		&sess.ID, &sess.BankID, &sess.UserID, &mode, &sess.Seed, &sess.Status,
		&items, &summary, &sess.StartedAt, &sess.Deadline, &sess.SubmittedAt,
		&sess.TimeUp)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("session %q not found", id)
	}
	if err != nil {
		return Session{}, err
	}
	sess.Mode = assemble.Mode(mode)
	if err := json.Unmarshal([]byte(items), &sess.Items); err != nil {
		return Session{}, fmt.Errorf("session %q: decode items: %w", id, err)
	}
	if summary.Valid {
		var sum Summary
		if err := json.Unmarshal([]byte(summary.String), &sum); err != nil {
			return Session{}, fmt.Errorf("session %q: decode summary: %w", id, err)
		}
		sess.Summary = &sum
	}
	return sess, nil
}

func (s *SQLStore) AddCoverage(ids []int) error {
	for _, id := range ids {
		_, err := s.db.Exec(`INSERT INTO coverage (question_id)
			VALUES ($1) ON CONFLICT (question_id) DO NOTHING`, id)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) CoverageIDs() ([]int, error) {
	rows, err := s.db.Query(`SELECT question_id FROM coverage ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLStore) ResetCoverage() error {
	_, err := s.db.Exec(`DELETE FROM coverage`)
	return err
}
