package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ANSI sequences used by the statistics report.
const (
	ColorReset   = "\033[0m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
)

// GetDisplayWidth returns the terminal cell width of text, counting wide
// runes and emoji as two cells.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces up to the given display width.
func PadRight(text string, width int) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// TruncateText shortens text to fit the given display width, appending ".."
// when anything was cut.
func TruncateText(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 2 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "..")
}

// FormatHeaderTitle styles the report header (Magenta + Bold).
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatOverviewTitle styles overview section titles (Cyan + Bold).
func FormatOverviewTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}

// FormatDataTitle styles data section titles (Green + Bold).
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, title, ColorReset)
}

// FormatSectionSeparator draws a horizontal rule of the given display width.
func FormatSectionSeparator(width int) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, strings.Repeat("─", width), ColorReset)
}
