// Package database provides pgx-backed persistence for uploaded file records.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries wraps a DBTX with typed query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over the given connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DataFile is one uploaded file's metadata row.
type DataFile struct {
	ID          pgtype.UUID
	FileName    string
	StoragePath string
	SizeBytes   int64
	UploadedAt  time.Time
	Processed   bool
}

const schema = `
CREATE TABLE IF NOT EXISTS data_files (
	id UUID PRIMARY KEY,
	file_name TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	processed BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS data_files_uploaded_at_idx ON data_files (uploaded_at DESC);
`

// EnsureSchema creates the data_files table if it does not exist.
// Safe to run on every startup.
func (q *Queries) EnsureSchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, schema)
	return err
}

const insertDataFile = `
INSERT INTO data_files (id, file_name, storage_path, size_bytes)
VALUES ($1, $2, $3, $4)
RETURNING id, file_name, storage_path, size_bytes, uploaded_at, processed
`

// InsertDataFileParams are the inputs for InsertDataFile.
type InsertDataFileParams struct {
	ID          pgtype.UUID
	FileName    string
	StoragePath string
	SizeBytes   int64
}

// InsertDataFile records a newly stored upload and returns the full row.
func (q *Queries) InsertDataFile(ctx context.Context, arg InsertDataFileParams) (DataFile, error) {
	row := q.db.QueryRow(ctx, insertDataFile, arg.ID, arg.FileName, arg.StoragePath, arg.SizeBytes)
	var f DataFile
	err := row.Scan(&f.ID, &f.FileName, &f.StoragePath, &f.SizeBytes, &f.UploadedAt, &f.Processed)
	return f, err
}

const getDataFile = `
SELECT id, file_name, storage_path, size_bytes, uploaded_at, processed
FROM data_files
WHERE id = $1
`

// GetDataFile fetches one record by ID. Returns ErrNotFound when absent.
func (q *Queries) GetDataFile(ctx context.Context, id pgtype.UUID) (DataFile, error) {
	row := q.db.QueryRow(ctx, getDataFile, id)
	var f DataFile
	err := row.Scan(&f.ID, &f.FileName, &f.StoragePath, &f.SizeBytes, &f.UploadedAt, &f.Processed)
	if errors.Is(err, pgx.ErrNoRows) {
		return DataFile{}, ErrNotFound
	}
	return f, err
}

const listDataFiles = `
SELECT id, file_name, storage_path, size_bytes, uploaded_at, processed
FROM data_files
ORDER BY uploaded_at DESC
`

// ListDataFiles returns all file records, newest first.
func (q *Queries) ListDataFiles(ctx context.Context) ([]DataFile, error) {
	rows, err := q.db.Query(ctx, listDataFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []DataFile
	for rows.Next() {
		var f DataFile
		if err := rows.Scan(&f.ID, &f.FileName, &f.StoragePath, &f.SizeBytes, &f.UploadedAt, &f.Processed); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

const markProcessed = `
UPDATE data_files SET processed = true WHERE id = $1
`

// MarkProcessed flags a record after a successful inference run.
func (q *Queries) MarkProcessed(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, markProcessed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteDataFile = `
DELETE FROM data_files WHERE id = $1
`

// DeleteDataFile removes a record. Returns ErrNotFound when nothing matched.
func (q *Queries) DeleteDataFile(ctx context.Context, id pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, deleteDataFile, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NewUUID generates a fresh random ID as a pgtype.UUID.
func NewUUID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

// ParseUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ParseUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// UUIDString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func UUIDString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
