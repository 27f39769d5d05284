package lookup

// Response is the machine-readable form of one evaluation, shared by the
// JSON API and `fundlookup lookup --json`.
type Response struct {
	Query   string  `json:"query"`
	State   string  `json:"state"`
	Fields  []Field `json:"fields,omitempty"`
	Message string  `json:"message,omitempty"`
}

// NewResponse describes state for query. Missing or blank projected values
// are reported as placeholder with Present set accordingly.
func NewResponse(query string, state State, placeholder, notFoundMessage string) Response {
	resp := Response{Query: query, State: state.Kind().String()}
	switch state.Kind() {
	case KindFound:
		resp.Fields = make([]Field, 0, len(state.fields))
		for _, f := range state.fields {
			resp.Fields = append(resp.Fields, Field{
				Column:  f.Column,
				Value:   state.Value(f.Column, placeholder),
				Present: f.Present,
			})
		}
	case KindNotFound:
		resp.Message = notFoundMessage
	}
	return resp
}
