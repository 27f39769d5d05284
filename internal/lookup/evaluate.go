package lookup

import "fundlookup/internal/dataset"

// Projection names the key column and the columns shown on a match.
// It is static configuration, never user input.
type Projection struct {
	KeyColumn string
	Columns   []string
}

// DefaultProjection matches on ISIN No and shows the parent and sub fund.
func DefaultProjection() Projection {
	return Projection{
		KeyColumn: "ISIN No",
		Columns:   []string{"Parent Fund", "Sub Fund Name"},
	}
}

// Evaluate scans ds in order for the first record whose key column equals
// query exactly (case-sensitive, untrimmed) and projects it.
func Evaluate(ds *dataset.Dataset, query string, p Projection) State {
	rec, ok := ds.Find(p.KeyColumn, query)
	if !ok {
		return NotFoundState()
	}
	return State{kind: KindFound, fields: project(rec, p.Columns)}
}

func project(rec dataset.Record, columns []string) []Field {
	fields := make([]Field, len(columns))
	for i, col := range columns {
		v, ok := rec.Get(col)
		fields[i] = Field{Column: col, Value: v, Present: ok}
	}
	return fields
}
