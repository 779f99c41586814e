package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor switches all rendering to plain text, for piped output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// SeverityStyle maps a recommendation severity to its color.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityHigh:
		return StyleRed
	case domain.SeverityMedium:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// SeverityPill renders a severity such as "● HIGH".
func SeverityPill(s domain.Severity) string {
	return SeverityStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// TrendIndicator renders a trend label with a direction arrow.
func TrendIndicator(label domain.TrendLabel) string {
	switch label {
	case domain.TrendImproving:
		return StyleGreen.Render("▲ improving")
	case domain.TrendDeclining:
		return StyleRed.Render("▼ declining")
	default:
		return StyleDim.Render("■ stable")
	}
}

// CoverageStyled colors a coverage percentage: below 50 red, below 75 yellow.
func CoverageStyled(pct float64) string {
	text := fmt.Sprintf("%.0f%%", pct)
	switch {
	case pct < 50:
		return StyleRed.Render(text)
	case pct < 75:
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
