package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lagape/traiteur/internal/validation"
)

// ErrNotFound is returned when an operation references a provider, product
// or invoice id absent from the store. Deleting an already-absent id is the
// one exception: deletes are idempotent and report success.
var ErrNotFound = errors.New("not found")

// ValidationError carries the per-field violations that blocked an
// operation. Nothing is persisted when one is returned.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %v", fields)
}
