package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tabscan/tabscan/internal/core"
	"github.com/tabscan/tabscan/internal/database"
)

// fileResponse is the JSON shape for one file record.
type fileResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
	Processed  bool      `json:"processed"`
}

func toFileResponse(f database.DataFile) fileResponse {
	return fileResponse{
		ID:         database.UUIDString(f.ID),
		FileName:   f.FileName,
		SizeBytes:  f.SizeBytes,
		UploadedAt: f.UploadedAt,
		Processed:  f.Processed,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploadFile accepts a multipart CSV upload, validates it, stores the
// bytes and records the metadata.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+4096)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, core.ErrNoFile)
		return
	}
	defer file.Close()

	rec, err := s.service.SaveFile(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFileResponse(rec))
}

// handleListFiles returns all uploaded file records, newest first.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.service.ListFiles(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetFile returns one file record by ID.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	rec, err := s.service.GetFile(r.Context(), fileID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponse(rec))
}

// handleDeleteFile removes a file record and its stored bytes.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	if err := s.service.DeleteFile(r.Context(), fileID); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleProcessFile runs the analysis pipeline on a stored file and returns
// the inference report payload.
func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	resp, err := s.service.ProcessFile(r.Context(), fileID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
