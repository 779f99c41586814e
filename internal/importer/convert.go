package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/google/uuid"
)

// SkippedRow records an import row that could not be turned into a session.
type SkippedRow struct {
	Index  int
	ID     string
	Reason string
}

// ConvertResult holds the sessions built from an import and the rows dropped.
type ConvertResult struct {
	Sessions []*domain.ProductionSession
	Skipped  []SkippedRow
}

// Convert transforms a validated schema into sessions. Timestamps go through
// ParseInstant; rows with missing, unparsable or inverted timestamps are
// skipped and reported, never fatal.
func Convert(schema *SessionImportSchema, loc *time.Location, now time.Time) ConvertResult {
	var res ConvertResult
	for i, row := range schema.Sessions {
		start, err := ParseInstant(row.Start, loc)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Index: i, ID: row.ID, Reason: fmt.Sprintf("start: %v", err)})
			continue
		}
		end, err := ParseInstant(row.End, loc)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Index: i, ID: row.ID, Reason: fmt.Sprintf("end: %v", err)})
			continue
		}
		if !start.Before(end) {
			res.Skipped = append(res.Skipped, SkippedRow{Index: i, ID: row.ID, Reason: "end is not after start"})
			continue
		}

		spanMin := int(math.Round(end.Sub(start).Minutes()))
		res.Sessions = append(res.Sessions, &domain.ProductionSession{
			ID:           domain.CoalesceStr(row.ID, uuid.New().String()),
			TaskID:       row.TaskID,
			StartTime:    start,
			EndTime:      end,
			TimeSpentMin: domain.ValueOr(spanMin, row.TimeSpentMinutes),
			Quantity:     domain.ValueOr(0, row.Quantity),
			Note:         row.Note,
			CreatedAt:    now,
		})
	}
	return res
}
