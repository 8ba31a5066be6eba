package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a student id matches no row.
var ErrNotFound = errors.New("student not found")

// Repository persists students in Postgres across the base table and the
// 1:1 details table. Reads join both; writes touch both sequentially with no
// surrounding transaction (last write wins, matching the storage model the
// service documents).
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const studentColumns = `
	s.id, s.name, s.ra, s.rga, s.student_rg, s.student_cpf, s.room_number,
	s.shift, s.grade_year, s.grade_class, s.photo_url, s.birth_date,
	s.departure_method, s.status, s.image_rights,
	COALESCE(d.guardian1_name, ''), COALESCE(d.guardian1_note, ''), COALESCE(d.guardian1_phone, ''),
	COALESCE(d.guardian1_rg, ''), COALESCE(d.guardian1_cpf, ''),
	COALESCE(d.guardian2_name, ''), COALESCE(d.guardian2_note, ''), COALESCE(d.guardian2_phone, ''),
	COALESCE(d.guardian2_rg, ''), COALESCE(d.guardian2_cpf, ''),
	COALESCE(d.phone3, ''), COALESCE(d.phone3_note, ''), COALESCE(d.phone4, ''), COALESCE(d.phone4_note, '')`

// List returns the full roster.
func (r *Repository) List(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+studentColumns+`
		FROM students s
		LEFT JOIN student_details d ON d.student_id = s.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}

// Get returns a single student by id.
func (r *Repository) Get(ctx context.Context, id string) (Student, error) {
	numID, err := numericID(id)
	if err != nil {
		return Student{}, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+`
		FROM students s
		LEFT JOIN student_details d ON d.student_id = s.id
		WHERE s.id = $1
	`, numID)
	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return st, err
}

// Create inserts the base row and then the details row. A details failure
// leaves the base row in place; the caller surfaces the error as-is.
func (r *Repository) Create(ctx context.Context, st Student) error {
	numID, err := numericID(st.ID)
	if err != nil {
		return err
	}
	year, class := splitGrade(st.Grade)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO students (
			id, name, ra, rga, student_rg, student_cpf, room_number,
			shift, grade_year, grade_class, photo_url, birth_date,
			departure_method, status, image_rights
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, numID, st.Name, st.RegistrationNumber, st.RGA, st.StudentRG, st.StudentCPF,
		st.RoomNumber, st.Shift, year, class, st.PhotoURL, st.BirthDate,
		st.DepartureMethod, st.Status, st.HasImageRights())
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO student_details (
			student_id,
			guardian1_name, guardian1_note, guardian1_phone, guardian1_rg, guardian1_cpf,
			guardian2_name, guardian2_note, guardian2_phone, guardian2_rg, guardian2_cpf,
			phone3, phone3_note, phone4, phone4_note
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, numID,
		st.Guardian1Name, st.Guardian1Note, st.Guardian1Phone, st.Guardian1RG, st.Guardian1CPF,
		st.Guardian2Name, st.Guardian2Note, st.Guardian2Phone, st.Guardian2RG, st.Guardian2CPF,
		st.Phone3, st.Phone3Note, st.Phone4, st.Phone4Note)
	return err
}

// Update rewrites both rows.
func (r *Repository) Update(ctx context.Context, st Student) error {
	numID, err := numericID(st.ID)
	if err != nil {
		return err
	}
	year, class := splitGrade(st.Grade)

	res, err := r.db.ExecContext(ctx, `
		UPDATE students SET
			name = $2, ra = $3, rga = $4, student_rg = $5, student_cpf = $6,
			room_number = $7, shift = $8, grade_year = $9, grade_class = $10,
			photo_url = $11, birth_date = $12, departure_method = $13,
			status = $14, image_rights = $15
		WHERE id = $1
	`, numID, st.Name, st.RegistrationNumber, st.RGA, st.StudentRG, st.StudentCPF,
		st.RoomNumber, st.Shift, year, class, st.PhotoURL, st.BirthDate,
		st.DepartureMethod, st.Status, st.HasImageRights())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO student_details (
			student_id,
			guardian1_name, guardian1_note, guardian1_phone, guardian1_rg, guardian1_cpf,
			guardian2_name, guardian2_note, guardian2_phone, guardian2_rg, guardian2_cpf,
			phone3, phone3_note, phone4, phone4_note
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (student_id) DO UPDATE SET
			guardian1_name = EXCLUDED.guardian1_name,
			guardian1_note = EXCLUDED.guardian1_note,
			guardian1_phone = EXCLUDED.guardian1_phone,
			guardian1_rg = EXCLUDED.guardian1_rg,
			guardian1_cpf = EXCLUDED.guardian1_cpf,
			guardian2_name = EXCLUDED.guardian2_name,
			guardian2_note = EXCLUDED.guardian2_note,
			guardian2_phone = EXCLUDED.guardian2_phone,
			guardian2_rg = EXCLUDED.guardian2_rg,
			guardian2_cpf = EXCLUDED.guardian2_cpf,
			phone3 = EXCLUDED.phone3,
			phone3_note = EXCLUDED.phone3_note,
			phone4 = EXCLUDED.phone4,
			phone4_note = EXCLUDED.phone4_note
	`, numID,
		st.Guardian1Name, st.Guardian1Note, st.Guardian1Phone, st.Guardian1RG, st.Guardian1CPF,
		st.Guardian2Name, st.Guardian2Note, st.Guardian2Phone, st.Guardian2RG, st.Guardian2CPF,
		st.Phone3, st.Phone3Note, st.Phone4, st.Phone4Note)
	return err
}

// StudentName returns just the display name for a student id.
func (r *Repository) StudentName(ctx context.Context, id string) (string, error) {
	numID, err := numericID(id)
	if err != nil {
		return "", err
	}
	var name string
	err = r.db.QueryRowContext(ctx, `SELECT name FROM students WHERE id = $1`, numID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return name, err
}

// Delete removes a student; the details row goes with it via cascade.
func (r *Repository) Delete(ctx context.Context, id string) error {
	numID, err := numericID(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, numID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (Student, error) {
	var (
		st          Student
		numID       int64
		year, class string
		rights      bool
	)
	err := row.Scan(
		&numID, &st.Name, &st.RegistrationNumber, &st.RGA, &st.StudentRG, &st.StudentCPF,
		&st.RoomNumber, &st.Shift, &year, &class, &st.PhotoURL, &st.BirthDate,
		&st.DepartureMethod, &st.Status, &rights,
		&st.Guardian1Name, &st.Guardian1Note, &st.Guardian1Phone, &st.Guardian1RG, &st.Guardian1CPF,
		&st.Guardian2Name, &st.Guardian2Note, &st.Guardian2Phone, &st.Guardian2RG, &st.Guardian2CPF,
		&st.Phone3, &st.Phone3Note, &st.Phone4, &st.Phone4Note,
	)
	if err != nil {
		return Student{}, err
	}
	st.ID = strconv.FormatInt(numID, 10)
	st.Grade = combineGrade(year, class)
	if rights {
		st.ImageRights = ImageRightsSigned
	} else {
		st.ImageRights = "Não"
	}
	return st, nil
}

// numericID converts the application-level string id to its storage form.
func numericID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid student id %q: %w", id, err)
	}
	return n, nil
}

// splitGrade stores "6º A" as year "6º" and class "A".
func splitGrade(grade string) (year, class string) {
	parts := strings.SplitN(strings.TrimSpace(grade), " ", 2)
	year = parts[0]
	if len(parts) == 2 {
		class = parts[1]
	}
	return year, class
}

func combineGrade(year, class string) string {
	if year != "" && class != "" {
		return year + " " + class
	}
	return year
}
