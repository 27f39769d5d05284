package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable is a simple table component for rendering static data.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := t.columnWidths()

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	t.renderRow(&sb, t.Headers, colWidths, headerStyle, sepStyle)

	totalWidth := len(colWidths) - 1 // separators
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		t.renderRow(&sb, row, colWidths, rowStyle, sepStyle)
	}

	return sb.String()
}

// columnWidths sizes each column to its widest cell plus padding.
func (t *SimpleTable) columnWidths() []int {
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}
	return colWidths
}

func (t *SimpleTable) renderRow(sb *strings.Builder, cells []string, widths []int, cell, sep lipgloss.Style) {
	for i := range widths {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		sb.WriteString(cell.Width(widths[i]).Render(value))
		if i < len(widths)-1 {
			sb.WriteString(sep.Render("|"))
		}
	}
	sb.WriteString("\n")
}
