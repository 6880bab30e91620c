// Public domain.

package aglib

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBackup is returned by RestoreSL without a prior BackupSL.
var ErrNoBackup = errors.New("no sources library backup to restore")

// FormatError reports an unsupported file format.
type FormatError struct {
	Path      string
	Format    string
	Supported []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: format %q not supported, supported formats: %s",
		e.Path, e.Format, strings.Join(e.Supported, ", "))
}

// ParseError reports a source file that could not be parsed.
type ParseError struct {
	File string
	Line int // 0 for XML files
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CatalogError reports an unsupported catalog name.
type CatalogError struct {
	Name      string
	Supported []string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %q not supported, supported catalogs: %s",
		e.Name, strings.Join(e.Supported, ", "))
}

// RangeError reports an argument outside its valid range.
type RangeError struct {
	What     string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.What, e.Value, e.Min, e.Max)
}
