package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
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

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Truncate shortens s to width terminal cells, keeping ANSI styling intact.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s to width terminal cells, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

// FormatMinutes renders minutes as "h:mm".
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration is FormatMinutes for a time.Duration.
func FormatDuration(d time.Duration) string {
	return FormatMinutes(int(d / time.Minute))
}

// GermanDate renders a day as the office prints it, e.g. "Mi 10.01.2018".
func GermanDate(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return weekdayAbbrev[day.Weekday()] + " " + day.Format("02.01.2006")
}

var weekdayAbbrev = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}
