package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	content = strings.TrimRight(content, "\n")
	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content) + "\n"
	}
	return boxStyle.Render(content) + "\n"
}

// TruncID shortens an ID to eight characters.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// noteWidth caps free-text columns in tables.
const noteWidth = 40

// Clip shortens free text to width cells, ending it with an ellipsis.
func Clip(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// FormatMinutes converts raw minutes into "1,234h 5m" form.
func FormatMinutes(min float64) string {
	total := int64(math.Round(min))
	if total <= 0 {
		return "0m"
	}
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%sh %dm", humanize.Comma(h), m)
	case h > 0:
		return humanize.Comma(h) + "h"
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatAmount renders a money amount with thousands separators and cents.
func FormatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// FormatRate renders a per-unit cost with four decimals.
func FormatRate(v float64) string {
	return humanize.FormatFloat("#,###.####", v)
}

// CalculatedAgo renders how long ago a snapshot was taken, e.g. "3 hours ago".
func CalculatedAgo(t, now time.Time) string {
	if t.IsZero() {
		return Dim("never")
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ClockRange renders "08:00–09:30".
func ClockRange(start, end time.Time) string {
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// SessionTime renders a session start as date and clock time.
func SessionTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// DateRange renders an inclusive calendar range.
func DateRange(from, to time.Time) string {
	return from.Format(domain.DateLayout) + " → " + to.Format(domain.DateLayout)
}

// Pct renders a signed percentage change.
func Pct(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}
