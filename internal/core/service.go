package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tabscan/tabscan/internal/config"
	"github.com/tabscan/tabscan/internal/database"
	"github.com/tabscan/tabscan/internal/logging"
)

// Service provides the core business logic for file upload and type
// inference. It owns the uploads directory, the file-record store, and the
// inference engine; every request is handled independently with no state
// shared between invocations.
type Service struct {
	pool       *pgxpool.Pool
	queries    *database.Queries
	cfg        *config.Config
	engine     *Engine
	uploadsDir string
}

// NewService creates a Service and ensures the uploads directory exists.
func NewService(pool *pgxpool.Pool, cfg *config.Config) (*Service, error) {
	dir := cfg.Upload.Dir
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}

	return &Service{
		pool:    pool,
		queries: database.New(pool),
		cfg:     cfg,
		engine: NewEngine(Options{
			MaxColumns:        cfg.Inference.MaxColumns,
			MaxRows:           cfg.Inference.MaxRows,
			SampleSize:        cfg.Inference.SampleSize,
			CategoryThreshold: cfg.Inference.CategoryThreshold,
		}),
		uploadsDir: dir,
	}, nil
}

// Engine exposes the inference engine, mainly for tests and library use.
func (s *Service) Engine() *Engine {
	return s.engine
}

// validateUpload checks the upload-time file specifications: extension and
// declared size. Runs before any bytes are stored.
func (s *Service) validateUpload(fileName string, size int64) error {
	if fileName == "" {
		return ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	allowed := false
	for _, a := range s.cfg.Upload.AllowedExtensions {
		if ext == strings.ToLower(a) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: allowed types: %s",
			ErrInvalidFileType, strings.Join(s.cfg.Upload.AllowedExtensions, ", "))
	}

	if size > s.cfg.Upload.MaxFileSize {
		return fmt.Errorf("%w: %dMB", ErrFileTooLarge, s.cfg.Upload.MaxFileSize/(1024*1024))
	}

	return nil
}

// SaveFile validates an upload, stores its bytes under the uploads directory
// and records its metadata. The stored name is a fresh UUID so original file
// names never touch the filesystem.
func (s *Service) SaveFile(ctx context.Context, fileName string, size int64, r io.Reader) (database.DataFile, error) {
	if err := s.validateUpload(fileName, size); err != nil {
		return database.DataFile{}, err
	}

	id := database.NewUUID()
	path := filepath.Join(s.uploadsDir, database.UUIDString(id)+".csv")

	dst, err := os.Create(path)
	if err != nil {
		return database.DataFile{}, fmt.Errorf("store file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(r, s.cfg.Upload.MaxFileSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return database.DataFile{}, fmt.Errorf("store file: %w", err)
	}
	if written > s.cfg.Upload.MaxFileSize {
		_ = os.Remove(path)
		return database.DataFile{}, fmt.Errorf("%w: %dMB",
			ErrFileTooLarge, s.cfg.Upload.MaxFileSize/(1024*1024))
	}

	rec, err := s.queries.InsertDataFile(ctx, database.InsertDataFileParams{
		ID:          id,
		FileName:    fileName,
		StoragePath: path,
		SizeBytes:   written,
	})
	if err != nil {
		_ = os.Remove(path)
		return database.DataFile{}, fmt.Errorf("insert file record: %w", err)
	}

	logging.FromContext(ctx).Info("file stored",
		"id", database.UUIDString(id),
		"name", fileName,
		"size", written,
	)
	return rec, nil
}

// GetFile fetches one file record by ID string.
func (s *Service) GetFile(ctx context.Context, id string) (database.DataFile, error) {
	pgID := database.ParseUUID(id)
	if !pgID.Valid {
		return database.DataFile{}, ErrRecordNotFound
	}

	rec, err := s.queries.GetDataFile(ctx, pgID)
	if errors.Is(err, database.ErrNotFound) {
		return database.DataFile{}, ErrRecordNotFound
	}
	return rec, err
}

// ListFiles returns all file records, newest first.
func (s *Service) ListFiles(ctx context.Context) ([]database.DataFile, error) {
	return s.queries.ListDataFiles(ctx)
}

// DeleteFile removes a file record and its stored bytes.
func (s *Service) DeleteFile(ctx context.Context, id string) error {
	rec, err := s.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.queries.DeleteDataFile(ctx, rec.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if err := os.Remove(rec.StoragePath); err != nil && !os.IsNotExist(err) {
		logging.FromContext(ctx).Warn("remove stored file",
			"id", id, "error", err)
	}
	return nil
}

// ProcessFile runs the full analysis pipeline for a stored file: load with
// the encoding fallback chain, structurally validate, infer column types,
// and assemble the response payload. The record is marked processed only on
// success.
func (s *Service) ProcessFile(ctx context.Context, id string) (*ProcessResponse, error) {
	rec, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	table, err := LoadCSV(rec.StoragePath, s.cfg.Upload.Encodings)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrStoredFileMissing
		}
		return nil, err
	}

	if err := s.engine.Validate(table); err != nil {
		return nil, err
	}

	rep := s.engine.Infer(table)
	resp := AssembleReport(rep, FileMeta{Name: rec.FileName, SizeBytes: rec.SizeBytes})

	if err := s.markProcessed(ctx, rec.ID); err != nil {
		logging.FromContext(ctx).Warn("mark processed", "id", id, "error", err)
	}

	logging.FromContext(ctx).Info("file processed",
		"id", id,
		"rows", rep.TotalRows,
		"columns", rep.TotalColumns,
	)
	return resp, nil
}

func (s *Service) markProcessed(ctx context.Context, id pgtype.UUID) error {
	return s.queries.MarkProcessed(ctx, id)
}
