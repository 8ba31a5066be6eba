package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the Postgres handle behind the roster, the occurrences and the
// audit log. The pgx stdlib driver keeps the repos on plain database/sql.
type DB struct {
	Client *sql.DB
}

// NewDB opens the pool with the configured limits and pings once so a bad
// address surfaces at startup. On a ping failure the handle is still
// returned; the caller decides whether an unreachable database is fatal.
func NewDB(connString string, maxOpen, maxIdle int) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	if maxOpen <= 0 {
		maxOpen = 10
	}
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// Close closes the pool. Safe on a nil handle.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
