// Public domain.

package agsource

import (
	"fmt"
	"strings"
)

// NotFoundError reports a lookup by name that failed.
type NotFoundError struct {
	What  string // "parameter", "source", "selection variable", ...
	Name  string
	Owner string // where it was looked for, may be empty
}

func (e *NotFoundError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("%s %q not found", e.What, e.Name)
	}
	return fmt.Sprintf("%s %q not found in %s", e.What, e.Name, e.Owner)
}

// TypeNotFoundError reports an unrecognized type tag.
type TypeNotFoundError struct {
	What      string // "spectrum", "spatial model", "catalog"
	Name      string
	Supported []string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("%s type %q not found, supported: %s",
		e.What, e.Name, strings.Join(e.Supported, ", "))
}

// NotFreeableError reports an attempt to free a parameter outside
// FreeableParams.
type NotFreeableError struct {
	Param   string
	Allowed []string
}

func (e *NotFreeableError) Error() string {
	return fmt.Sprintf("parameter %q cannot be freed, freeable parameters: %s",
		e.Param, strings.Join(e.Allowed, ", "))
}

// ReadOnlyError reports an attempt to set an output value.
type ReadOnlyError struct {
	Name string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("%q is a read-only output value", e.Name)
}
