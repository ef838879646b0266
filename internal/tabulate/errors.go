package tabulate

import "fmt"

// ArgumentError reports an invalid command-line selection, such as an
// unknown deliverable mode.
type ArgumentError struct {
	Name  string
	Value string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Name, e.Value)
}

// LoadError reports that a table could not be loaded: the file is missing or
// unreadable, or a required column is absent.
type LoadError struct {
	Table  string
	Path   string
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	where := e.Table
	if e.Path != "" {
		where = fmt.Sprintf("%s (%s)", e.Table, e.Path)
	}
	if e.Column != "" {
		return fmt.Sprintf("loading %s: missing required column %q", where, e.Column)
	}
	return fmt.Sprintf("loading %s: %v", where, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a field that could not be coerced to its declared type,
// or a row that could not be read at all.
type ParseError struct {
	Table  string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("parsing %s line %d: %v", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s line %d column %q: cannot use %q: %v", e.Table, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
