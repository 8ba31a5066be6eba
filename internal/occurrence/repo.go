package occurrence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an occurrence id matches no row.
var ErrNotFound = errors.New("occurrence not found")

// Filter narrows occurrence listings.
type Filter struct {
	StudentID string
	Category  Category
	From      string // YYYY-MM-DD, inclusive
	To        string // YYYY-MM-DD, inclusive
}

// Repository persists occurrences in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const occurrenceColumns = `id, student_id, COALESCE(group_id, ''), occurred_on, title, description, category, registered_by, confidential`

// List returns occurrences newest-first with basic filters.
func (r *Repository) List(ctx context.Context, f Filter) ([]Occurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM occurrences`
	args := []any{}
	clauses := []string{}
	if f.StudentID != "" {
		args = append(args, f.StudentID)
		clauses = append(clauses, fmt.Sprintf("student_id = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.From != "" {
		args = append(args, f.From)
		clauses = append(clauses, fmt.Sprintf("occurred_on >= $%d", len(args)))
	}
	if f.To != "" {
		args = append(args, f.To)
		clauses = append(clauses, fmt.Sprintf("occurred_on <= $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY occurred_on DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.ID, &o.StudentID, &o.GroupID, &o.Date, &o.Title,
			&o.Description, &o.Category, &o.RegisteredBy, &o.Confidential); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

// Get returns a single occurrence by id.
func (r *Repository) Get(ctx context.Context, id string) (Occurrence, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+occurrenceColumns+` FROM occurrences WHERE id = $1
	`, id)
	var o Occurrence
	err := row.Scan(&o.ID, &o.StudentID, &o.GroupID, &o.Date, &o.Title,
		&o.Description, &o.Category, &o.RegisteredBy, &o.Confidential)
	if errors.Is(err, sql.ErrNoRows) {
		return Occurrence{}, ErrNotFound
	}
	return o, err
}

// ListByGroup returns the members of a group, optionally excluding one id.
func (r *Repository) ListByGroup(ctx context.Context, groupID, excludeID string) ([]Occurrence, error) {
	if groupID == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+occurrenceColumns+` FROM occurrences
		WHERE group_id = $1 AND id <> $2
		ORDER BY created_at
	`, groupID, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.ID, &o.StudentID, &o.GroupID, &o.Date, &o.Title,
			&o.Description, &o.Category, &o.RegisteredBy, &o.Confidential); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

// Insert writes a new occurrence.
func (r *Repository) Insert(ctx context.Context, o Occurrence) (Occurrence, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO occurrences (id, student_id, group_id, occurred_on, title, description, category, registered_by, confidential, created_at)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,$7,$8,$9,$10)
	`, o.ID, o.StudentID, o.GroupID, o.Date, o.Title, o.Description, o.Category,
		o.RegisteredBy, o.Confidential, time.Now().UTC())
	if err != nil {
		return Occurrence{}, err
	}
	return o, nil
}

// Update rewrites an occurrence. The author attribution is never touched.
func (r *Repository) Update(ctx context.Context, o Occurrence) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE occurrences SET
			group_id = NULLIF($2, ''), occurred_on = $3, title = $4,
			description = $5, category = $6, confidential = $7
		WHERE id = $1
	`, o.ID, o.GroupID, o.Date, o.Title, o.Description, o.Category, o.Confidential)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an occurrence by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM occurrences WHERE id = $1`, id)
	return err
}
