package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LogEntry is one append-only audit record. Entries are written once and
// never mutated.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// listLimit caps reads to the most recent entries.
const listLimit = 1000

// Repo persists audit log entries in Postgres.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a repo.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Insert appends one entry.
func (r *Repo) Insert(ctx context.Context, e LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, logged_at, username, action, details)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.Timestamp, e.User, e.Action, e.Details)
	return err
}

// List returns the most recent entries, newest first.
func (r *Repo) List(ctx context.Context) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, logged_at, username, action, details
		FROM audit_log
		ORDER BY logged_at DESC
		LIMIT $1
	`, listLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.User, &e.Action, &e.Details); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteOlderThan removes entries logged before the cutoff and reports how
// many were purged.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_log WHERE logged_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
