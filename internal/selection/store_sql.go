package selection

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLBagStore persists bags in the bags table, one row per key with the id
// sequence as a JSON array. Corrupt rows read as empty bags so a damaged
// store only costs a fresh rotation, never a failed session.
type SQLBagStore struct {
	db *sql.DB
}

func NewSQLBagStore(db *sql.DB) *SQLBagStore { return &SQLBagStore{db: db} }

func (s *SQLBagStore) LoadBag(key string) ([]int, error) {
	var data string
	err := s.db.QueryRow(`SELECT ids_json FROM bags WHERE key=$1`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeBag([]byte(data)), nil
}

func (s *SQLBagStore) SaveBag(key string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO bags (key, ids_json, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET ids_json=EXCLUDED.ids_json, updated_at=EXCLUDED.updated_at`,
		key, string(data), time.Now().Unix())
	return err
}

// decodeBag tolerates malformed persisted state by treating it as empty.
func decodeBag(data []byte) []int {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}
