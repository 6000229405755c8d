package barfile

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat indicates a file extension with no reader or writer.
var ErrUnknownFormat = errors.New("unknown chart file format")

// ParseError represents a failure to read a chart file.
type ParseError struct {
	Path   string
	Format string // "json", "toml", "yaml", "xlsx"
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
