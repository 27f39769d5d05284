// Package dataset loads the reporting-funds table once and publishes it as an
// immutable, ordered sequence of records.
package dataset

// Record is one decoded data row keyed by header name.
// Records are never mutated after decode.
type Record struct {
	fields map[string]string
	raw    []string
}

// NewRecord builds a record from header names and one raw row. Cells beyond
// the header width stay in Raw only; header columns the row does not reach are absent.
func NewRecord(columns []string, row []string) Record {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			fields[col] = row[i]
		}
	}
	raw := make([]string, len(row))
	copy(raw, row)
	return Record{fields: fields, raw: raw}
}

// Get returns the value at column and whether the row had that column.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.fields[column]
	return v, ok
}

// Raw returns a copy of the row's cells in source order.
func (r Record) Raw() []string {
	out := make([]string, len(r.raw))
	copy(out, r.raw)
	return out
}

// Len is the number of cells the source row had.
func (r Record) Len() int {
	return len(r.raw)
}

// Dataset is the ordered, write-once collection of records.
// The zero value and nil are both valid empty datasets.
type Dataset struct {
	columns []string
	records []Record
}

// New builds a dataset. The slices are owned by the dataset afterwards.
func New(columns []string, records []Record) *Dataset {
	return &Dataset{columns: columns, records: records}
}

// Empty returns a dataset with no columns and no records.
func Empty() *Dataset {
	return &Dataset{}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Columns returns a copy of the header row after normalization.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the header row named column.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.columns {
		if c == column {
			return true
		}
	}
	return false
}

// At returns the i-th record in source order, or false when i is out of
// range or the dataset is nil.
func (d *Dataset) At(i int) (Record, bool) {
	if d == nil || i < 0 || i >= len(d.records) {
		return Record{}, false
	}
	return d.records[i], true
}

// Each calls fn for every record in source order until fn returns false.
func (d *Dataset) Each(fn func(i int, r Record) bool) {
	if d == nil {
		return
	}
	for i, r := range d.records {
		if !fn(i, r) {
			return
		}
	}
}

// Find returns the first record whose value at column equals value exactly.
func (d *Dataset) Find(column, value string) (Record, bool) {
	var (
		found Record
		ok    bool
	)
	d.Each(func(_ int, r Record) bool {
		if v, has := r.Get(column); has && v == value {
			found, ok = r, true
			return false
		}
		return true
	})
	return found, ok
}
