package bank

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps banks in the banks table, one row per bank with the
// question list as JSON in the authoring format.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutBank(id string, qs []Question) error {
	data, err := Marshal(qs)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO banks (id, questions_json, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET questions_json=EXCLUDED.questions_json`,
		id, string(data), time.Now().Unix())
	return err
}

func (s *SQLStore) GetBank(id string) (*Bank, error) {
	var data string
	err := s.db.QueryRow(`SELECT questions_json FROM banks WHERE id=$1`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bank %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	qs, err := Parse([]byte(data))
	if err != nil {
		return nil, err
	}
	return New(qs), nil
}

func (s *SQLStore) ListBanks() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM banks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
