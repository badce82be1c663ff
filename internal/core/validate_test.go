package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func smallTable(cols, rows int) *Table {
	t := &Table{
		Columns: make([]string, cols),
		Cells:   make([][]any, cols),
	}
	for c := 0; c < cols; c++ {
		t.Columns[c] = fmt.Sprintf("col_%d", c)
		t.Cells[c] = make([]any, rows)
		for r := 0; r < rows; r++ {
			t.Cells[c][r] = "x"
		}
	}
	return t
}

func TestValidate(t *testing.T) {
	e := NewEngine(Options{MaxColumns: 10, MaxRows: 100})

	tests := []struct {
		name    string
		table   *Table
		wantErr error
	}{
		{
			name:    "valid table passes",
			table:   smallTable(3, 5),
			wantErr: nil,
		},
		{
			name:    "nil table is empty",
			table:   nil,
			wantErr: ErrEmptyTable,
		},
		{
			name:    "no columns is empty",
			table:   &Table{},
			wantErr: ErrEmptyTable,
		},
		{
			name:    "header only is empty",
			table:   smallTable(3, 0),
			wantErr: ErrEmptyTable,
		},
		{
			name:    "at column cap passes",
			table:   smallTable(10, 5),
			wantErr: nil,
		},
		{
			name:    "over column cap",
			table:   smallTable(11, 5),
			wantErr: ErrTooManyColumns,
		},
		{
			name:    "at row cap passes",
			table:   smallTable(3, 100),
			wantErr: nil,
		},
		{
			name:    "over row cap",
			table:   smallTable(3, 101),
			wantErr: ErrTooManyRows,
		},
		{
			name: "duplicate column names",
			table: &Table{
				Columns: []string{"a", "a", "b"},
				Cells:   [][]any{{"1"}, {"2"}, {"3"}},
			},
			wantErr: ErrDuplicateColumnNames,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Validate(tt.table)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateErrorMessages(t *testing.T) {
	e := NewEngine(Options{MaxColumns: 10, MaxRows: 100})

	err := e.Validate(smallTable(11, 5))
	if err == nil || !errors.Is(err, ErrTooManyColumns) {
		t.Fatalf("want column cap error, got %v", err)
	}
	if want := "maximum allowed: 10"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err.Error(), want)
	}

	dup := &Table{
		Columns: []string{"a", "a"},
		Cells:   [][]any{{"1"}, {"2"}},
	}
	err = e.Validate(dup)
	if err == nil || !strings.Contains(err.Error(), `"a"`) {
		t.Errorf("duplicate error %v does not name the column", err)
	}
}

// Empty check comes before the caps, so an empty table that also exceeds
// the column cap reports emptiness.
func TestValidateCheckOrder(t *testing.T) {
	e := NewEngine(Options{MaxColumns: 2, MaxRows: 100})

	table := smallTable(5, 0)
	if err := e.Validate(table); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Validate() = %v, want %v", err, ErrEmptyTable)
	}
}
