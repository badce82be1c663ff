package core

// classify.go implements the per-column classifier.
//
// The decision chain is fixed: numeric first, then datetime, then the
// categorical/text fallback. Each probe is a pure fallible parse over a single
// cell; a branch claims the column only when every non-null cell parses. The
// fallback always succeeds, so classification is total.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would land more than this many years in the future are assumed
// to be in the previous century.
var TwoDigitYearPivot = 20

// Datetime layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
		"20060102",
		"2006-01-02 15:04:05", "2006-01-02 15:04",
		"2006-01-02T15:04:05", "2006-01-02T15:04:05Z07:00",
		"1/2/2006 15:04:05", "1/2/2006 15:04",
		"2006-01-02 15:04:05.999999999",
	}
)

// parseNumber attempts a locale-agnostic decimal parse of a single cell.
// Returns false for nulls and anything that is not a number or a numeric
// string.
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// parseDatetime attempts a permissive datetime parse of a single cell.
// Strings are matched against a fixed set of layouts; 2-digit years are
// pivoted the same way the converter pivots dates elsewhere.
func parseDatetime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}

		for _, layout := range fourDigitYearLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}

		pivotYear := time.Now().Year() + TwoDigitYearPivot
		for _, layout := range twoDigitYearLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if t.Year() > pivotYear {
					t = t.AddDate(-100, 0, 0)
				}
				return t, true
			}
		}

		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// isIntegral reports whether a parsed number is mathematically an integer.
func isIntegral(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f == math.Trunc(f)
}

// Classify determines the semantic kind of a column and computes its
// descriptive record. It never fails: the categorical/text fallback is the
// terminal branch.
func (e *Engine) Classify(cells []any) ClassificationResult {
	stats := columnStats(cells, e.opts.SampleSize)

	res := ClassificationResult{
		SampleValues: stats.samples,
		OriginalType: stats.originalType,
		NullCount:    stats.nullCount,
		UniqueCount:  stats.uniqueCount,
	}

	// An entirely-null column carries no evidence for the numeric or datetime
	// branches; it falls straight through to the categorical fallback with a
	// unique ratio of zero.
	if stats.nonNull > 0 {
		if kind, ok := probeNumeric(cells); ok {
			res.Kind = kind
			return res
		}

		if probeDatetime(cells) {
			res.Kind = KindDatetime
			return res
		}
	}

	ratio := 0.0
	if len(cells) > 0 {
		ratio = float64(stats.uniqueCount) / float64(len(cells))
	}
	// The threshold compares the raw ratio; rounding is presentation only.
	res.UniqueRatio = math.Round(ratio*100) / 100

	if ratio < e.opts.CategoryThreshold {
		res.Kind = KindCategory
	} else {
		res.Kind = KindText
	}
	return res
}

// probeNumeric tries to parse every non-null cell as a number. A single
// failure rejects the whole column; there are no partial numeric columns.
func probeNumeric(cells []any) (Kind, bool) {
	allIntegral := true
	for _, v := range cells {
		if v == nil {
			continue
		}
		f, ok := parseNumber(v)
		if !ok {
			return "", false
		}
		if !isIntegral(f) {
			allIntegral = false
		}
	}
	if allIntegral {
		return KindInteger, true
	}
	return KindFloat, true
}

// probeDatetime tries to parse every non-null cell as a datetime.
func probeDatetime(cells []any) bool {
	for _, v := range cells {
		if v == nil {
			continue
		}
		if _, ok := parseDatetime(v); !ok {
			return false
		}
	}
	return true
}

// colStats aggregates the descriptive facts shared by every branch.
type colStats struct {
	samples      []any
	nullCount    int
	nonNull      int
	uniqueCount  int
	originalType string
}

// columnStats walks a column once, collecting samples, null and distinct
// counts, and the storage-level type tag.
func columnStats(cells []any, sampleSize int) colStats {
	var st colStats
	seen := make(map[string]struct{})
	tag := ""
	mixed := false

	for _, v := range cells {
		if v == nil {
			st.nullCount++
			continue
		}
		st.nonNull++

		if len(st.samples) < sampleSize {
			st.samples = append(st.samples, v)
		}

		key := distinctKey(v)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			st.uniqueCount++
		}

		t := storageTag(v)
		if tag == "" {
			tag = t
		} else if tag != t {
			mixed = true
		}
	}

	switch {
	case st.nonNull == 0:
		st.originalType = "empty"
	case mixed:
		st.originalType = "mixed"
	default:
		st.originalType = tag
	}
	return st
}

// distinctKey produces a comparable identity for a cell value. The type is
// part of the key so "1" (string) and 1 (int) stay distinct.
func distinctKey(v any) string {
	return fmt.Sprintf("%T\x00%v", v, v)
}

// storageTag names the raw storage type of a cell before inference.
func storageTag(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int64"
	case float32, float64:
		return "float64"
	case bool:
		return "bool"
	case time.Time:
		return "time"
	default:
		return fmt.Sprintf("%T", v)
	}
}
