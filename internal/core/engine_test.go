package core

import (
	"bytes"
	"encoding/json"
	"testing"
)

func inferenceTable() *Table {
	return &Table{
		Columns: []string{"id", "price", "joined", "status", "note"},
		Cells: [][]any{
			{"1", "2", "3", "4", "5", "6"},
			{"9.99", "12.50", "3.00", "7.25", "1.10", "0.99"},
			{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"},
			{"active", "active", "inactive", "active", "inactive", "active"},
			{"first order", "repeat buyer", "wholesale", "gift purchase", "refund issued", "bulk order"},
		},
	}
}

func TestInferClassifiesEveryColumnInOrder(t *testing.T) {
	e := NewEngine(DefaultOptions())
	rep := e.Infer(inferenceTable())

	if rep.TotalRows != 6 {
		t.Errorf("TotalRows = %d, want 6", rep.TotalRows)
	}
	if rep.TotalColumns != 5 {
		t.Errorf("TotalColumns = %d, want 5", rep.TotalColumns)
	}

	wantOrder := []string{"id", "price", "joined", "status", "note"}
	gotOrder := rep.ColumnTypes.Names()
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("classified %d columns, want %d", len(gotOrder), len(wantOrder))
	}
	for i, name := range wantOrder {
		if gotOrder[i] != name {
			t.Errorf("column order[%d] = %q, want %q", i, gotOrder[i], name)
		}
	}

	wantKinds := map[string]Kind{
		"id":     KindInteger,
		"price":  KindFloat,
		"joined": KindDatetime,
		"status": KindCategory,
		"note":   KindText,
	}
	for name, want := range wantKinds {
		res, ok := rep.ColumnTypes.Get(name)
		if !ok {
			t.Fatalf("no result for column %q", name)
		}
		if res.Kind != want {
			t.Errorf("column %q kind = %q, want %q", name, res.Kind, want)
		}
	}
}

func TestInferSampleData(t *testing.T) {
	e := NewEngine(DefaultOptions())
	rep := e.Infer(inferenceTable())

	if len(rep.SampleData) != 5 {
		t.Fatalf("len(SampleData) = %d, want 5", len(rep.SampleData))
	}
	if rep.SampleData[0]["id"] != "1" {
		t.Errorf("SampleData[0][id] = %v, want %q", rep.SampleData[0]["id"], "1")
	}
	if rep.SampleData[4]["status"] != "inactive" {
		t.Errorf("SampleData[4][status] = %v, want %q", rep.SampleData[4]["status"], "inactive")
	}
}

func TestInferSampleDataShortTable(t *testing.T) {
	e := NewEngine(DefaultOptions())
	table := &Table{
		Columns: []string{"a"},
		Cells:   [][]any{{"1", "2"}},
	}

	rep := e.Infer(table)
	if len(rep.SampleData) != 2 {
		t.Errorf("len(SampleData) = %d, want 2", len(rep.SampleData))
	}
}

func TestInferIsDeterministic(t *testing.T) {
	e := NewEngine(DefaultOptions())
	table := inferenceTable()

	first, err := json.Marshal(e.Infer(table).ColumnTypes)
	if err != nil {
		t.Fatalf("marshal first run: %v", err)
	}
	second, err := json.Marshal(e.Infer(table).ColumnTypes)
	if err != nil {
		t.Fatalf("marshal second run: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("repeated inference produced different output:\n%s\n%s", first, second)
	}
}

func TestInferDoesNotMutateTable(t *testing.T) {
	e := NewEngine(DefaultOptions())
	table := inferenceTable()

	before, _ := json.Marshal(table.Cells)
	e.Infer(table)
	after, _ := json.Marshal(table.Cells)

	if !bytes.Equal(before, after) {
		t.Error("Infer mutated the input table")
	}
}

func TestSafeClassifyRecoversPanics(t *testing.T) {
	res := safeClassify(func() ClassificationResult {
		panic("bad cell")
	})

	if res.Kind != KindError {
		t.Fatalf("kind = %q, want %q", res.Kind, KindError)
	}
	if res.Error != "classification failed: bad cell" {
		t.Errorf("error = %q, want panic message preserved", res.Error)
	}
}

func TestSafeClassifyPassesThroughResults(t *testing.T) {
	want := ClassificationResult{Kind: KindInteger}
	got := safeClassify(func() ClassificationResult { return want })

	if got.Kind != want.Kind {
		t.Errorf("kind = %q, want %q", got.Kind, want.Kind)
	}
}

func TestNewEngineDefaultsNonPositiveOptions(t *testing.T) {
	e := NewEngine(Options{})
	def := DefaultOptions()

	if e.opts.MaxColumns != def.MaxColumns {
		t.Errorf("MaxColumns = %d, want %d", e.opts.MaxColumns, def.MaxColumns)
	}
	if e.opts.MaxRows != def.MaxRows {
		t.Errorf("MaxRows = %d, want %d", e.opts.MaxRows, def.MaxRows)
	}
	if e.opts.SampleSize != def.SampleSize {
		t.Errorf("SampleSize = %d, want %d", e.opts.SampleSize, def.SampleSize)
	}
	if e.opts.CategoryThreshold != def.CategoryThreshold {
		t.Errorf("CategoryThreshold = %v, want %v", e.opts.CategoryThreshold, def.CategoryThreshold)
	}
}
