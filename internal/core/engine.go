package core

import "fmt"

// Options configures the inference engine. Limits are explicit so they are
// testable and overridable rather than baked-in literals.
type Options struct {
	// MaxColumns is the largest column count a table may have.
	MaxColumns int

	// MaxRows is the largest row count a table may have.
	MaxRows int

	// SampleSize is how many sample values and sample rows to report.
	SampleSize int

	// CategoryThreshold is the unique-ratio cutoff below which a column is
	// categorical rather than free text.
	CategoryThreshold float64
}

// DefaultOptions returns the engine defaults used when no configuration is
// supplied.
func DefaultOptions() Options {
	return Options{
		MaxColumns:        100,
		MaxRows:           1_000_000,
		SampleSize:        5,
		CategoryThreshold: 0.5,
	}
}

// Engine runs the column classifier over whole tables. An Engine holds no
// per-invocation state: every Infer call is independent and the input table
// is never mutated.
type Engine struct {
	opts Options
}

// NewEngine creates an inference engine with the given options. Zero or
// negative option values fall back to the defaults.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.MaxColumns <= 0 {
		opts.MaxColumns = def.MaxColumns
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = def.MaxRows
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = def.SampleSize
	}
	if opts.CategoryThreshold <= 0 {
		opts.CategoryThreshold = def.CategoryThreshold
	}
	return &Engine{opts: opts}
}

// Infer classifies every column of a validated table and assembles the
// aggregate report. Columns are processed in table order; a failure in one
// column is recorded inline as an error-kind result and never aborts the
// remaining columns. Callers must run Validate first.
func (e *Engine) Infer(t *Table) *InferenceReport {
	rep := &InferenceReport{
		TotalRows:    t.RowCount(),
		TotalColumns: len(t.Columns),
		Columns:      append([]string(nil), t.Columns...),
		SampleData:   t.SampleRows(e.opts.SampleSize),
	}

	for i, name := range t.Columns {
		rep.ColumnTypes.Add(name, e.classifyColumn(t.Cells[i]))
	}

	return rep
}

// classifyColumn wraps Classify in a recovery boundary so one malformed
// column degrades to an error-kind entry instead of taking down the report.
func (e *Engine) classifyColumn(cells []any) ClassificationResult {
	return safeClassify(func() ClassificationResult {
		return e.Classify(cells)
	})
}

// safeClassify converts a panic in the classifier into an error-kind result.
func safeClassify(fn func() ClassificationResult) (res ClassificationResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ClassificationResult{
				Kind:  KindError,
				Error: fmt.Sprintf("classification failed: %v", r),
			}
		}
	}()

	return fn()
}
