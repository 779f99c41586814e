package repository

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
)

// timestampLayout is fixed-width so stored instants compare correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp converts t to its UTC storage form.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp reads a stored instant and returns it in local time.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// parseDate reads a stored calendar date as local midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, s, time.Local)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res interface{ RowsAffected() (int64, error) }, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
