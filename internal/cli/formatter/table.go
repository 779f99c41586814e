package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column describes one table column. Numeric columns are right-aligned.
type Column struct {
	Title   string
	Numeric bool
}

// Cols builds left-aligned columns from titles.
func Cols(titles ...string) []Column {
	cols := make([]Column, len(titles))
	for i, t := range titles {
		cols[i] = Column{Title: t}
	}
	return cols
}

// Num marks the columns at the given indexes as numeric.
func Num(cols []Column, idx ...int) []Column {
	for _, i := range idx {
		if i >= 0 && i < len(cols) {
			cols[i].Numeric = true
		}
	}
	return cols
}

const colGap = 2

// RenderTable renders an aligned table with a separator under the header.
// Widths are measured on visible text so styled cells line up.
func RenderTable(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = StyleHeader.Render(c.Title)
	}
	writeRow(&b, cols, widths, titles)

	seps := make([]string, len(cols))
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(&b, cols, widths, seps)

	for _, row := range rows {
		writeRow(&b, cols, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []Column, widths []int, cells []string) {
	for i := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(0, widths[i]-lipgloss.Width(cell))
		last := i == len(cols)-1

		if cols[i].Numeric {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if !last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
