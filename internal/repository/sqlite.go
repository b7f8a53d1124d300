package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// DocumentRecord is one row of the relational metadata table.
type DocumentRecord struct {
	ID       int64
	FilePath string
	Title    string
	Author   string
}

// MetadataRepository is the relational sink: insert-only from the pipeline,
// read back only by the export service.
type MetadataRepository interface {
	SaveDocument(ctx context.Context, rec DocumentRecord) (int64, error)
	ListDocuments(ctx context.Context) ([]DocumentRecord, error)
}

type sqliteRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

const createTableStmt = `
CREATE TABLE IF NOT EXISTS document_metadata (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL,
	title     TEXT,
	author    TEXT
)`

// Open opens (or creates) the SQLite database and ensures the schema.
// Pass ":memory:" for an in-memory database.
func Open(ctx context.Context, path string, logger *slog.Logger) (MetadataRepository, *sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening sqlite database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create schema: %w", err)
	}
	return &sqliteRepo{db: db, logger: logger}, db, nil
}

func (r *sqliteRepo) SaveDocument(ctx context.Context, rec DocumentRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO document_metadata (file_path, title, author) VALUES (?, ?, ?)`,
		rec.FilePath, rec.Title, rec.Author,
	)
	if err != nil {
		r.logger.Error("failed to insert document metadata", "file_path", rec.FilePath, "error", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteRepo) ListDocuments(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, file_path, title, author FROM document_metadata ORDER BY id`)
	if err != nil {
		r.logger.Error("failed to list document metadata", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.ID, &rec.FilePath, &rec.Title, &rec.Author); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
