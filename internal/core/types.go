// Package core provides the business logic for CSV column type inference.
// This package has no HTTP dependencies and can be used by any frontend.
package core

import (
	"bytes"
	"encoding/json"
)

// Kind is the semantic type assigned to a column by the classifier.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindDatetime Kind = "datetime"
	KindCategory Kind = "category"
	KindText     Kind = "text"
	KindError    Kind = "error"
)

// Table is an in-memory table with named columns and a uniform row count.
// Cells are stored column-major: Cells[i] holds every value of column i,
// one entry per row. A nil cell is a null. Cells are commonly strings when
// loaded from CSV but may already be primitives when the engine is used as
// a library.
type Table struct {
	Columns []string
	Cells   [][]any
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// Row returns row i as a record keyed by column name, values verbatim.
func (t *Table) Row(i int) map[string]any {
	rec := make(map[string]any, len(t.Columns))
	for c, name := range t.Columns {
		rec[name] = t.Cells[c][i]
	}
	return rec
}

// SampleRows returns up to n leading rows as records keyed by column name.
func (t *Table) SampleRows(n int) []map[string]any {
	if n > t.RowCount() {
		n = t.RowCount()
	}
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}

// ClassificationResult describes one column after inference.
//
// UniqueRatio is meaningful only for category/text kinds and Error only for
// the error kind; MarshalJSON emits exactly the field set that applies.
type ClassificationResult struct {
	Kind         Kind
	SampleValues []any
	OriginalType string
	NullCount    int
	UniqueCount  int
	UniqueRatio  float64
	Error        string
}

// MarshalJSON emits only the fields relevant to the result's kind:
// error results carry kind+error, category/text add unique_ratio, and
// numeric/datetime results omit it.
func (r ClassificationResult) MarshalJSON() ([]byte, error) {
	if r.Kind == KindError {
		return json.Marshal(struct {
			Kind  Kind   `json:"kind"`
			Error string `json:"error"`
		}{r.Kind, r.Error})
	}

	samples := r.SampleValues
	if samples == nil {
		samples = []any{}
	}

	if r.Kind == KindCategory || r.Kind == KindText {
		return json.Marshal(struct {
			Kind         Kind    `json:"kind"`
			SampleValues []any   `json:"sample_values"`
			OriginalType string  `json:"original_type"`
			NullCount    int     `json:"null_count"`
			UniqueCount  int     `json:"unique_count"`
			UniqueRatio  float64 `json:"unique_ratio"`
		}{r.Kind, samples, r.OriginalType, r.NullCount, r.UniqueCount, r.UniqueRatio})
	}

	return json.Marshal(struct {
		Kind         Kind   `json:"kind"`
		SampleValues []any  `json:"sample_values"`
		OriginalType string `json:"original_type"`
		NullCount    int    `json:"null_count"`
		UniqueCount  int    `json:"unique_count"`
	}{r.Kind, samples, r.OriginalType, r.NullCount, r.UniqueCount})
}

// ColumnTypes is an ordered mapping from column name to classification
// result. Iteration and JSON encoding follow table column order, not map
// order.
type ColumnTypes struct {
	names   []string
	results map[string]ClassificationResult
}

// Add appends a result under the given column name.
func (c *ColumnTypes) Add(name string, res ClassificationResult) {
	if c.results == nil {
		c.results = make(map[string]ClassificationResult)
	}
	if _, exists := c.results[name]; !exists {
		c.names = append(c.names, name)
	}
	c.results[name] = res
}

// Get returns the result for a column name.
func (c *ColumnTypes) Get(name string) (ClassificationResult, bool) {
	res, ok := c.results[name]
	return res, ok
}

// Names returns the column names in insertion order.
func (c *ColumnTypes) Names() []string {
	return c.names
}

// Len returns the number of classified columns.
func (c *ColumnTypes) Len() int {
	return len(c.names)
}

// MarshalJSON encodes the mapping as a JSON object whose members appear in
// insertion order.
func (c ColumnTypes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.results[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// InferenceReport is the aggregate result of running the classifier over
// every column of a table.
type InferenceReport struct {
	TotalRows    int
	TotalColumns int
	Columns      []string
	ColumnTypes  ColumnTypes
	SampleData   []map[string]any
}

// FileMeta carries caller-supplied facts about the analyzed file.
type FileMeta struct {
	Name      string
	SizeBytes int64
}

// ProcessResponse is the final payload returned to API callers after a file
// has been analyzed.
type ProcessResponse struct {
	Status       string           `json:"status"`
	FileName     string           `json:"file_name"`
	FileSize     int64            `json:"file_size"`
	TotalRows    int              `json:"total_rows"`
	TotalColumns int              `json:"total_columns"`
	ColumnTypes  ColumnTypes      `json:"column_types"`
	Columns      []string         `json:"columns"`
	SampleData   []map[string]any `json:"sample_data"`
}
