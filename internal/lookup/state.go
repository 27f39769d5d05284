// Package lookup derives the presentation state of the fund form from the
// current query and the loaded dataset.
package lookup

import (
	"fmt"
	"strings"
)

// Kind tags a State.
type Kind int

const (
	KindEmpty    Kind = iota // nothing evaluated yet
	KindFound                // a record matched; Fields holds the projection
	KindNotFound             // no record matched
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is one projected column of a matched record.
// Present is false when the record had no such column.
type Field struct {
	Column  string `json:"column"`
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// State is the presentation state: Empty, Found(fields) or NotFound.
type State struct {
	kind   Kind
	fields []Field
}

// EmptyState is the initial state.
func EmptyState() State {
	return State{kind: KindEmpty}
}

// NotFoundState is the state after an evaluate that matched nothing.
func NotFoundState() State {
	return State{kind: KindNotFound}
}

// FoundState is the state after a match, with fields in projection order.
func FoundState(fields []Field) State {
	f := make([]Field, len(fields))
	copy(f, fields)
	return State{kind: KindFound, fields: f}
}

func (s State) Kind() Kind { return s.kind }

// Fields returns a copy of the projected fields; nil unless Found.
func (s State) Fields() []Field {
	if s.fields == nil {
		return nil
	}
	f := make([]Field, len(s.fields))
	copy(f, s.fields)
	return f
}

// Value returns the display value for column, or placeholder when the
// matched record lacks the column or its cell is blank.
func (s State) Value(column, placeholder string) string {
	for _, f := range s.fields {
		if f.Column == column {
			if !f.Present || f.Value == "" {
				return placeholder
			}
			return f.Value
		}
	}
	return placeholder
}

// Lines returns the text of the result region: a "Result:" heading, then
// one "column: value" line per projected column when Found, or the
// not-found message when NotFound.
func (s State) Lines(columns []string, placeholder, notFoundMessage string) []string {
	lines := []string{"Result:"}
	switch s.kind {
	case KindFound:
		for _, col := range columns {
			lines = append(lines, col+": "+s.Value(col, placeholder))
		}
	case KindNotFound:
		lines = append(lines, notFoundMessage)
	}
	return lines
}

// Equal reports whether two states would render identically.
func (s State) Equal(o State) bool {
	if s.kind != o.kind || len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}

func (s State) String() string {
	if s.kind != KindFound {
		return s.kind.String()
	}
	parts := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		parts = append(parts, fmt.Sprintf("%s=%q", f.Column, f.Value))
	}
	return fmt.Sprintf("found{%s}", strings.Join(parts, ", "))
}
