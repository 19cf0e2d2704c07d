package layout

import (
	"errors"
	"fmt"
)

// GeometryError indicates a bank or page geometry that cannot hold the format.
type GeometryError struct {
	// Field is the offending configuration item
	Field string

	// Value is the rejected value
	Value uint32

	// Reason explains the constraint
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// IsGeometryError returns true if the error is or wraps a GeometryError.
func IsGeometryError(err error) bool {
	var ge *GeometryError
	return errors.As(err, &ge)
}
