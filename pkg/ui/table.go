package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table represents a data table
type Table struct {
	Columns  []TableColumn
	Rows     [][]string
	maxWidth int
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// SetMaxWidth caps the total rendered width. Cells in the widest column
// are truncated to fit. Zero or negative means no cap.
func (t *Table) SetMaxWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var builder strings.Builder

	// Calculate actual column widths based on content
	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = runeLen(col.Header)
	}

	// Check row content widths
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) && runeLen(cell) > colWidths[i] {
				colWidths[i] = runeLen(cell)
			}
		}
	}

	// Apply minimum widths from column specs
	for i, col := range t.Columns {
		if col.Width > colWidths[i] {
			colWidths[i] = col.Width
		}
	}

	t.fitToMaxWidth(colWidths)

	// Render header
	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padString(truncateString(col.Header, colWidths[i]), colWidths[i], "left")
	}
	headerLine := StyleTableHeader.Render(strings.Join(headerParts, "  "))
	builder.WriteString(headerLine)
	builder.WriteString("\n")

	// Render separator
	separatorParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		separatorParts[i] = strings.Repeat("─", colWidths[i])
	}
	separator := StyleTableBorder.Render(strings.Join(separatorParts, "  "))
	builder.WriteString(separator)
	builder.WriteString("\n")

	// Render rows
	for idx, row := range t.Rows {
		rowParts := make([]string, len(t.Columns))
		for i, cell := range row {
			if i < len(t.Columns) {
				align := t.Columns[i].Align
				if align == "" {
					align = "left"
				}
				rowParts[i] = padString(truncateString(cell, colWidths[i]), colWidths[i], align)
			}
		}

		// Alternate row styles
		var rowStyle lipgloss.Style
		if idx%2 == 0 {
			rowStyle = StyleTableRow
		} else {
			rowStyle = StyleTableRowAlt
		}

		rowLine := rowStyle.Render(strings.Join(rowParts, "  "))
		builder.WriteString(rowLine)
		builder.WriteString("\n")
	}

	return builder.String()
}

// fitToMaxWidth shrinks the widest columns until the table fits, keeping
// every column at least wide enough to stay readable.
func (t *Table) fitToMaxWidth(colWidths []int) {
	if t.maxWidth <= 0 {
		return
	}

	const minColWidth = 8

	total := 2 * (len(colWidths) - 1) // column gaps
	for _, w := range colWidths {
		total += w
	}

	for total > t.maxWidth {
		widest := 0
		for i := 1; i < len(colWidths); i++ {
			if colWidths[i] > colWidths[widest] {
				widest = i
			}
		}
		if colWidths[widest] <= minColWidth {
			break
		}
		colWidths[widest]--
		total--
	}
}

// truncateString shortens a string to width runes, marking the cut
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}

// padString pads a string to the specified width with alignment
func padString(s string, width int, align string) string {
	length := runeLen(s)
	if length >= width {
		return s
	}

	padding := width - length

	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
	default: // "left"
		return s + strings.Repeat(" ", padding)
	}
}

// runeLen counts display characters rather than bytes so multibyte
// document names pad correctly
func runeLen(s string) int {
	return len([]rune(s))
}

// RenderSimpleList renders a simple bulleted list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(StyleInfo.Render("  • "))
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
