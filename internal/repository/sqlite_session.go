package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, task_id, start_time, end_time, time_spent_min, quantity, note, created_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.ProductionSession) error {
	query := `INSERT INTO production_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TaskID,
		formatTimestamp(s.StartTime),
		formatTimestamp(s.EndTime),
		s.TimeSpentMin,
		s.Quantity,
		s.Note,
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting production session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.ProductionSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM production_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("production session: %w", ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSessionRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM production_sessions
		WHERE start_time <= ? AND end_time >= ?
		ORDER BY start_time, id`
	return r.list(ctx, "listing overlapping sessions", query, formatTimestamp(to), formatTimestamp(from))
}

// ListStartingBetween selects sessions whose start lies in [from, to). A zero
// bound leaves that side open.
func (r *SQLiteSessionRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.ProductionSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM production_sessions WHERE 1 = 1`
	var args []any
	if !from.IsZero() {
		query += ` AND start_time >= ?`
		args = append(args, formatTimestamp(from))
	}
	if !to.IsZero() {
		query += ` AND start_time < ?`
		args = append(args, formatTimestamp(to))
	}
	query += ` ORDER BY start_time, id`
	return r.list(ctx, "listing sessions by start", query, args...)
}

func (r *SQLiteSessionRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.ProductionSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM production_sessions
		WHERE task_id = ? ORDER BY start_time, id`
	return r.list(ctx, "listing sessions by task", query, taskID)
}

func (r *SQLiteSessionRepo) ListAll(ctx context.Context) ([]*domain.ProductionSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM production_sessions ORDER BY start_time, id`
	return r.list(ctx, "listing sessions", query)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM production_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting production session: %w", err)
	}
	return requireAffected(res, "production session")
}

func (r *SQLiteSessionRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.ProductionSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sessions []*domain.ProductionSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// scanSession returns sql.ErrNoRows unwrapped so GetByID can map it.
func scanSession(row rowScanner) (*domain.ProductionSession, error) {
	var s domain.ProductionSession
	var startStr, endStr, createdStr string
	var spent sql.NullInt64

	err := row.Scan(&s.ID, &s.TaskID, &startStr, &endStr, &spent, &s.Quantity, &s.Note, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning production session: %w", err)
	}
	return populateSession(&s, startStr, endStr, createdStr, spent)
}

// populateSession fills in parsed fields after scanning raw strings.
func populateSession(s *domain.ProductionSession, startStr, endStr, createdStr string, spent sql.NullInt64) (*domain.ProductionSession, error) {
	var err error
	if s.StartTime, err = parseTimestamp(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.EndTime, err = parseTimestamp(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if s.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.TimeSpentMin = int(spent.Int64)
	return s, nil
}
