package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/domain"
)

// SQLiteCostRepo implements CostRepo. Excluded task IDs live in
// cost_excluded_tasks and are loaded with the record.
type SQLiteCostRepo struct {
	db db.DBTX
}

// NewSQLiteCostRepo creates a new SQLiteCostRepo.
func NewSQLiteCostRepo(conn db.DBTX) *SQLiteCostRepo {
	return &SQLiteCostRepo{db: conn}
}

const costColumns = `id, start_date, end_date, amount, is_paid, description, created_at, updated_at`

func (r *SQLiteCostRepo) Create(ctx context.Context, c *domain.CostRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cost_records (`+costColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatDate(c.StartDate),
		formatDate(c.EndDate),
		c.Amount,
		boolToInt(c.IsPaid),
		c.Description,
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting cost record: %w", err)
	}
	return r.insertExclusions(ctx, c.ID, c.ExcludedTaskIDs)
}

func (r *SQLiteCostRepo) GetByID(ctx context.Context, id string) (*domain.CostRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+costColumns+` FROM cost_records WHERE id = ?`, id)
	c, err := scanCost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cost record: %w", ErrNotFound)
		}
		return nil, err
	}
	if c.ExcludedTaskIDs, err = r.listExclusions(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteCostRepo) List(ctx context.Context) ([]*domain.CostRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+costColumns+` FROM cost_records ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing cost records: %w", err)
	}

	var costs []*domain.CostRecord
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating cost records: %w", err)
	}
	rows.Close()

	// Exclusions are loaded after the cursor closes; a single-connection
	// database cannot serve a second query while rows are open.
	for _, c := range costs {
		if c.ExcludedTaskIDs, err = r.listExclusions(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return costs, nil
}

func (r *SQLiteCostRepo) Update(ctx context.Context, c *domain.CostRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cost_records
		SET start_date = ?, end_date = ?, amount = ?, is_paid = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		formatDate(c.StartDate),
		formatDate(c.EndDate),
		c.Amount,
		boolToInt(c.IsPaid),
		c.Description,
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cost record: %w", err)
	}
	if err := requireAffected(res, "cost record"); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cost_excluded_tasks WHERE cost_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing cost exclusions: %w", err)
	}
	return r.insertExclusions(ctx, c.ID, c.ExcludedTaskIDs)
}

func (r *SQLiteCostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cost_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cost record: %w", err)
	}
	return requireAffected(res, "cost record")
}

func (r *SQLiteCostRepo) insertExclusions(ctx context.Context, costID string, taskIDs []string) error {
	for _, taskID := range taskIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO cost_excluded_tasks (cost_id, task_id) VALUES (?, ?)`,
			costID, taskID)
		if err != nil {
			return fmt.Errorf("inserting cost exclusion %s: %w", taskID, err)
		}
	}
	return nil
}

func (r *SQLiteCostRepo) listExclusions(ctx context.Context, costID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id FROM cost_excluded_tasks WHERE cost_id = ? ORDER BY task_id`, costID)
	if err != nil {
		return nil, fmt.Errorf("listing cost exclusions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning cost exclusion: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanCost(row rowScanner) (*domain.CostRecord, error) {
	var c domain.CostRecord
	var startStr, endStr, createdStr, updatedStr string
	var isPaid int

	err := row.Scan(&c.ID, &startStr, &endStr, &c.Amount, &isPaid, &c.Description, &createdStr, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning cost record: %w", err)
	}
	c.IsPaid = intToBool(isPaid)

	if c.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if c.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if c.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
