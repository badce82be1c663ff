package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tabscan/tabscan/internal/core"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "record not found maps to 404",
			err:         core.ErrRecordNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "file not found",
		},
		{
			name:        "stored file missing maps to 404",
			err:         core.ErrStoredFileMissing,
			wantStatus:  http.StatusNotFound,
			wantMessage: "file not found on server",
		},
		{
			name:        "empty table maps to 400",
			err:         core.ErrEmptyTable,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "the file is empty",
		},
		{
			name:        "wrapped structural error keeps its message",
			err:         fmt.Errorf("%w: maximum allowed: 100", core.ErrTooManyColumns),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "too many columns: maximum allowed: 100",
		},
		{
			name:        "duplicate columns maps to 400",
			err:         core.ErrDuplicateColumnNames,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "duplicate column names found",
		},
		{
			name:        "malformed csv maps to 400",
			err:         core.ErrMalformedCSV,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid CSV format",
		},
		{
			name:        "upload validation maps to 400",
			err:         core.ErrInvalidFileType,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid file type",
		},
		{
			name:        "unexpected error is sanitized to 500",
			err:         errors.New("pq: connection refused at 10.0.0.5:5432"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "an unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/files", nil)

			respondError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantMessage {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMessage)
			}

			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type = %q, want application/json", ct)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}
