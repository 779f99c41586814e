package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/domain"
)

// SQLiteCostAnalysisRepo implements CostAnalysisRepo using a SQLite database.
type SQLiteCostAnalysisRepo struct {
	db db.DBTX
}

// NewSQLiteCostAnalysisRepo creates a new SQLiteCostAnalysisRepo.
func NewSQLiteCostAnalysisRepo(conn db.DBTX) *SQLiteCostAnalysisRepo {
	return &SQLiteCostAnalysisRepo{db: conn}
}

const analysisColumns = `cost_id, version, effective_minutes, sessions_count, merged_periods_count,
	duplicates_eliminated, clipped_periods_count, excluded_sessions_count, skipped_sessions,
	cost_per_minute, cost_per_hour, calculated_at`

// Save stores a as the next version for its cost and sets a.Version.
func (r *SQLiteCostAnalysisRepo) Save(ctx context.Context, a *domain.CostAnalysis) error {
	var latest int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM cost_analyses WHERE cost_id = ?`, a.CostID).Scan(&latest)
	if err != nil {
		return fmt.Errorf("reading latest analysis version: %w", err)
	}

	version := latest + 1
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cost_analyses (`+analysisColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.CostID,
		version,
		a.EffectiveMinutes,
		a.SessionsCount,
		a.MergedPeriodsCount,
		a.DuplicatesEliminated,
		a.ClippedPeriodsCount,
		a.ExcludedSessionsCount,
		a.SkippedSessions,
		a.CostPerMinute,
		a.CostPerHour,
		formatTimestamp(a.LastCalculatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting cost analysis: %w", err)
	}
	a.Version = version
	return nil
}

func (r *SQLiteCostAnalysisRepo) GetLatest(ctx context.Context, costID string) (*domain.CostAnalysis, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+` FROM cost_analyses WHERE cost_id = ? ORDER BY version DESC LIMIT 1`, costID)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cost analysis: %w", ErrNotFound)
	}
	return a, err
}

func (r *SQLiteCostAnalysisRepo) ListLatest(ctx context.Context) ([]*domain.CostAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM cost_analyses a
		WHERE version = (SELECT MAX(version) FROM cost_analyses b WHERE b.cost_id = a.cost_id)
		ORDER BY cost_id`
	return r.list(ctx, query)
}

func (r *SQLiteCostAnalysisRepo) ListVersions(ctx context.Context, costID string) ([]*domain.CostAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM cost_analyses WHERE cost_id = ? ORDER BY version`
	return r.list(ctx, query, costID)
}

func (r *SQLiteCostAnalysisRepo) DeleteByCost(ctx context.Context, costID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cost_analyses WHERE cost_id = ?`, costID); err != nil {
		return fmt.Errorf("deleting cost analyses: %w", err)
	}
	return nil
}

func (r *SQLiteCostAnalysisRepo) list(ctx context.Context, query string, args ...any) ([]*domain.CostAnalysis, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cost analyses: %w", err)
	}
	defer rows.Close()

	var out []*domain.CostAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost analyses: %w", err)
	}
	return out, nil
}

func scanAnalysis(row rowScanner) (*domain.CostAnalysis, error) {
	var a domain.CostAnalysis
	var calculatedStr string
	err := row.Scan(
		&a.CostID, &a.Version, &a.EffectiveMinutes, &a.SessionsCount, &a.MergedPeriodsCount,
		&a.DuplicatesEliminated, &a.ClippedPeriodsCount, &a.ExcludedSessionsCount, &a.SkippedSessions,
		&a.CostPerMinute, &a.CostPerHour, &calculatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning cost analysis: %w", err)
	}
	a.EffectiveHours = a.EffectiveMinutes / 60
	if a.LastCalculatedAt, err = parseTimestamp(calculatedStr); err != nil {
		return nil, fmt.Errorf("parsing calculated_at: %w", err)
	}
	return &a, nil
}
