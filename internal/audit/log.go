// Package audit appends a record for every state-changing action: bank
// uploads, session starts and submits, coverage resets.
package audit

import (
	"context"
	"database/sql"
	"time"
)

type Event struct {
	Type      string // e.g. SessionSubmitted
	Key       string // natural key: session or bank id
	Actor     string // subject from the token
	DataJSON  string
	CreatedAt int64
}

// Log is nil-safe at call sites via Nop; a failed append never blocks the
// action it records.
type Log interface {
	Append(ctx context.Context, e Event) error
}

type SQLLog struct{ db *sql.DB }

func NewSQLLog(db *sql.DB) *SQLLog { return &SQLLog{db: db} }

func (l *SQLLog) Append(ctx context.Context, e Event) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO audit_log (typ, key, actor, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Type, e.Key, e.Actor, e.DataJSON, time.Now().Unix())
	return err
}

type Nop struct{}

func (Nop) Append(context.Context, Event) error { return nil }
