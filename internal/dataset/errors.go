package dataset

import "fmt"

// Load operations reported in LoadError.Op
const (
	OpFetch  = "fetch"
	OpDecode = "decode"
)

// LoadError is the single failure kind of the loader: the dataset could not
// be fetched or decoded. Surfaces log it and carry on with an empty dataset.
type LoadError struct {
	Source string
	Op     string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
