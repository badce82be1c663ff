package core

// loader.go turns a file on disk into an in-memory Table.
//
// The loader owns everything the inference engine is not allowed to care
// about: file I/O, the candidate-encoding fallback chain, and CSV syntax.
// For each candidate encoding in order it decodes the raw bytes and parses
// the result; the first candidate that both decodes and parses wins.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Load errors. All of them reject the request before inference runs.
var (
	ErrFileEmpty           = errors.New("the file is empty")
	ErrNoDecodableEncoding = errors.New("unable to decode file with supported encodings")
	ErrMalformedCSV        = errors.New("invalid CSV format")
)

// LoadCSV reads the file at path and parses it into a Table, trying each
// candidate encoding in order. The first CSV record is the header; every
// following record is a data row. Empty cells become nulls.
func LoadCSV(path string, encodings []string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrFileEmpty
	}

	var parseErr error
	for _, name := range encodings {
		text, ok := decode(data, name)
		if !ok {
			continue
		}

		table, err := parseTable(text)
		if err != nil {
			parseErr = err
			continue
		}
		return table, nil
	}

	if parseErr != nil {
		return nil, parseErr
	}
	return nil, ErrNoDecodableEncoding
}

// decode converts raw bytes to a string using the named encoding.
// Unknown encoding names and undecodable input both report failure so the
// caller can move on to the next candidate.
func decode(data []byte, name string) (string, bool) {
	switch normalizeEncoding(name) {
	case "utf-8":
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	case "latin1", "iso-8859-1":
		return decodeWith(charmap.ISO8859_1, data)
	case "windows-1252", "cp1252":
		return decodeWith(charmap.Windows1252, data)
	default:
		return "", false
	}
}

func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func normalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "utf8":
		return "utf-8"
	case "iso8859-1", "iso88591":
		return "iso-8859-1"
	}
	return name
}

// parseTable parses decoded CSV text into a column-major Table.
// Records must be rectangular; ragged rows are a malformed-CSV failure.
func parseTable(text string) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	if len(records) == 0 {
		return nil, ErrFileEmpty
	}

	header := records[0]
	if len(header) > 0 {
		// A utf-8 decode leaves the BOM as U+FEFF; a latin1 decode turns
		// its three bytes into "ï»¿". Strip either from the first header cell.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
		header[0] = strings.TrimPrefix(header[0], "\u00ef\u00bb\u00bf")
	}

	columns := make([]string, len(header))
	copy(columns, header)

	dataRows := records[1:]
	cells := make([][]any, len(columns))
	for i := range cells {
		cells[i] = make([]any, len(dataRows))
	}

	for rowIdx, row := range dataRows {
		for colIdx := range columns {
			v := row[colIdx]
			if v == "" {
				cells[colIdx][rowIdx] = nil
			} else {
				cells[colIdx][rowIdx] = v
			}
		}
	}

	return &Table{Columns: columns, Cells: cells}, nil
}
