package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/dwhctl/internal/warehouse"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	renderColorGreen  = lipgloss.Color("#22c55e")
	renderColorRed    = lipgloss.Color("#ef4444")
	renderColorYellow = lipgloss.Color("#eab308")
	renderColorBlue   = lipgloss.Color("#3b82f6")
	renderColorDim    = lipgloss.Color("#6b7280")
	renderColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	renderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(renderColorWhite)

	renderSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(renderColorBlue)

	renderDimStyle = lipgloss.NewStyle().
			Foreground(renderColorDim)

	renderGreenStyle = lipgloss.NewStyle().
				Foreground(renderColorGreen)

	renderYellowStyle = lipgloss.NewStyle().
				Foreground(renderColorYellow)

	renderRedStyle = lipgloss.NewStyle().
			Foreground(renderColorRed)
)

// maxCellWidth caps a column so wide values (user agents, locations)
// do not blow up the table.
const maxCellWidth = 40

// renderRowsTable renders a query result as an aligned table with a
// styled title.
func renderRowsTable(title string, rows *warehouse.Rows) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderSectionStyle.Render("  " + title))
	b.WriteString("\n")

	widths := columnWidths(rows)
	b.WriteString(renderDimStyle.Render("  " + formatRow(rows.Columns, widths)))
	b.WriteString("\n")
	b.WriteString(renderDimStyle.Render("  " + strings.Repeat("─", rowWidth(widths))))
	b.WriteString("\n")
	for _, record := range rows.Records {
		b.WriteString("  " + formatRow(record, widths))
		b.WriteString("\n")
	}
	b.WriteString(renderDimStyle.Render(fmt.Sprintf("  (%d rows)", len(rows.Records))))
	b.WriteString("\n")
	return b.String()
}

// columnWidths returns the display width of each column, capped at
// maxCellWidth.
func columnWidths(rows *warehouse.Rows) []int {
	widths := make([]int, len(rows.Columns))
	for i, col := range rows.Columns {
		widths[i] = len(col)
	}
	for _, record := range rows.Records {
		for i, val := range record {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}
	return widths
}

// formatRow pads every cell to its column width, truncating overlong
// values.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := maxCellWidth
		if i < len(widths) {
			w = widths[i]
		}
		if len(cell) > w {
			if w > 3 {
				cell = cell[:w-3] + "..."
			} else {
				cell = cell[:w]
			}
		}
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return strings.Join(parts, "  ")
}

// rowWidth is the total width of a formatted row.
func rowWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	if total >= 2 {
		total -= 2
	}
	return total
}
