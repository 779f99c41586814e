package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/importer"
)

// FormatTaskList renders tasks as a table.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{TruncID(t.ID), t.Code, t.Name})
	}
	return RenderTable(Cols("ID", "CODE", "NAME"), rows)
}

// FormatSessionList renders sessions with their resolved task names.
func FormatSessionList(sessions []*domain.ProductionSession, names domain.TaskNames) string {
	if len(sessions) == 0 {
		return Dim("No sessions in range.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	totalMin, totalQty := 0, 0
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			SessionTime(s.StartTime),
			s.EndTime.Format("15:04"),
			FormatMinutes(float64(s.TimeSpentMin)),
			fmt.Sprintf("%d", s.Quantity),
			names.Name(s.TaskID),
			Dim(Clip(s.Note, noteWidth)),
		})
		totalMin += s.TimeSpentMin
		totalQty += s.Quantity
	}

	var b strings.Builder
	b.WriteString(RenderTable(Num(Cols("ID", "START", "END", "LOGGED", "QTY", "TASK", "NOTE"), 3, 4), rows))
	fmt.Fprintf(&b, "\n%s %d sessions, %s logged, %d units\n", Dim("Total:"), len(sessions), FormatMinutes(float64(totalMin)), totalQty)
	return b.String()
}

// FormatImportResult summarises an import and lists skipped rows.
func FormatImportResult(imported int, skipped []importer.SkippedRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Imported %d sessions.\n", StyleGreen.Render("✔"), imported)
	if len(skipped) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "%s Skipped %d rows:\n", StyleYellow.Render("!"), len(skipped))
	rows := make([][]string, 0, len(skipped))
	for _, s := range skipped {
		rows = append(rows, []string{fmt.Sprintf("%d", s.Index), domain.CoalesceStr(s.ID, "—"), s.Reason})
	}
	b.WriteString(RenderTable(Num(Cols("ROW", "ID", "REASON"), 0), rows))
	return b.String()
}
