package lookup

import (
	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"

	"github.com/google/uuid"
)

// Model is the application state of one form: query text, dataset snapshot
// and presentation state. Values are immutable; every transition returns a
// new Model with a higher version.
type Model struct {
	query      string
	data       *dataset.Dataset
	projection Projection
	state      State
	loaded     bool
	version    uint64
}

// NewModel returns the initial model: empty query, empty dataset, Empty state.
func NewModel(p Projection) Model {
	return Model{
		data:       dataset.Empty(),
		projection: p,
		state:      EmptyState(),
	}
}

func (m Model) Query() string { return m.query }
func (m Model) State() State { return m.state }
func (m Model) Version() uint64 { return m.version }
func (m Model) Projection() Projection { return m.projection }
func (m Model) Dataset() *dataset.Dataset { return m.data }

// IsLoaded reports whether the loader has delivered, successfully or not.
func (m Model) IsLoaded() bool { return m.loaded }

// WithQuery replaces the query text. The presentation state is untouched
// until the next Evaluate.
func (m Model) WithQuery(q string) Model {
	if q == m.query {
		return m
	}
	m.query = q
	m.version++
	return m
}

// Loaded is the load-complete transition. A failed load installs an empty
// dataset, so later evaluations report NotFound. Only the first delivery
// counts.
func (m Model) Loaded(res dataset.Result) Model {
	if m.loaded {
		return m
	}
	m.data = res.Snapshot()
	m.loaded = true
	m.version++
	return m
}

// Evaluate is the evaluate transition: it derives the state from the current
// query and dataset and records the outcome on the lookup log.
func (m Model) Evaluate() Model {
	m.state = Evaluate(m.data, m.query, m.projection)
	m.version++

	fields := map[string]interface{}{
		"evaluation_id": uuid.NewString(),
		"query":         m.query,
		"outcome":       m.state.Kind().String(),
		"records":       m.data.Len(),
		"loaded":        m.loaded,
	}
	if m.state.Kind() == KindFound {
		matched := make(map[string]string, len(m.state.fields))
		for _, f := range m.state.fields {
			if f.Present {
				matched[f.Column] = f.Value
			}
		}
		fields["matched"] = matched
	}
	logging.Get(logging.CategoryLookup).StructuredLog("info", "evaluate", fields)

	return m
}
