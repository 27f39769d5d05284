package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleTableEmpty(t *testing.T) {
	tbl := NewSimpleTable("Result", []string{"Field", "Value"})
	assert.Equal(t, "", tbl.View(NewStyles(LightTheme())))
}

func TestSimpleTableRendersRows(t *testing.T) {
	tbl := NewSimpleTable("Result", []string{"Field", "Value"})
	tbl.AddRow("Parent Fund", "Alpha Umbrella")
	tbl.AddRow("Sub Fund Name") // short row is padded

	out := tbl.View(NewStyles(LightTheme()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 5) // title, header, divider, two rows
	assert.Contains(t, out, "Result")
	assert.Contains(t, out, "Parent Fund")
	assert.Contains(t, out, "Alpha Umbrella")
	assert.Contains(t, out, "Sub Fund Name")
}
