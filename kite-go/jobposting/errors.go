package jobposting

import "fmt"

// DataLoadError is returned when a dataset cannot be read or parsed.
type DataLoadError struct {
	Path string
	// Line is the 1-based row of the file the error occurred on, header included.
	// It is 0 for errors not tied to a row.
	Line int
	// Column is the name of the offending column, if any.
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("loading %s: line %d: column %s: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("loading %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DataLoadError) Unwrap() error {
	return e.Err
}
