package core

// validate.go enforces table-level structural limits before any per-column
// work happens. Validation is a pure predicate: no side effects, first
// failing check wins.

import (
	"errors"
	"fmt"
)

// Structural validation errors. These reject the whole table; inference
// never runs when one is returned.
var (
	ErrEmptyTable           = errors.New("the file is empty")
	ErrTooManyColumns       = errors.New("too many columns")
	ErrTooManyRows          = errors.New("too many rows")
	ErrDuplicateColumnNames = errors.New("duplicate column names found")
)

// Validate checks the structural limits of a table, in order:
// emptiness, column cap, row cap, duplicate column names.
func (e *Engine) Validate(t *Table) error {
	if t == nil || len(t.Columns) == 0 || t.RowCount() == 0 {
		return ErrEmptyTable
	}

	if len(t.Columns) > e.opts.MaxColumns {
		return fmt.Errorf("%w: maximum allowed: %d", ErrTooManyColumns, e.opts.MaxColumns)
	}

	if t.RowCount() > e.opts.MaxRows {
		return fmt.Errorf("%w: maximum allowed: %d", ErrTooManyRows, e.opts.MaxRows)
	}

	seen := make(map[string]struct{}, len(t.Columns))
	for _, name := range t.Columns {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumnNames, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}
