package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"twig-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a script runs next to the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			forest_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_name ON documents(name);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, ts_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// ListDocuments returns document metadata (no forests), newest-first.
func (s Store) ListDocuments(ctx context.Context) ([]model.Document, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at_unixms, updated_at_unixms
		FROM documents ORDER BY updated_at_unixms DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Document{}
	for rows.Next() {
		var d model.Document
		var created, updated int64
		if err := rows.Scan(&d.ID, &d.Name, &created, &updated); err != nil {
			return nil, err
		}
		d.CreatedAt = time.UnixMilli(created).UTC()
		d.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

// LoadDocument loads one document including its forest snapshot.
// The second return is false when the document does not exist.
func (s Store) LoadDocument(ctx context.Context, id string) (*model.Document, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()
	return loadDocumentTx(ctx, db, id)
}

func loadDocumentTx(ctx context.Context, db *sql.DB, id string) (*model.Document, bool, error) {
	var d model.Document
	var created, updated int64
	var forestJSON string
	err := db.QueryRowContext(ctx, `SELECT id, name, created_at_unixms, updated_at_unixms, forest_json
		FROM documents WHERE id = ?`, strings.TrimSpace(id)).
		Scan(&d.ID, &d.Name, &created, &updated, &forestJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	d.CreatedAt = time.UnixMilli(created).UTC()
	d.UpdatedAt = time.UnixMilli(updated).UTC()
	if err := json.Unmarshal([]byte(forestJSON), &d.Roots); err != nil {
		return nil, false, fmt.Errorf("document %s has corrupt forest snapshot: %w", id, err)
	}
	return &d, true, nil
}

// FindDocumentByName resolves a document by exact name, then by id.
func (s Store) FindDocumentByName(ctx context.Context, ref string) (*model.Document, bool, error) {
	ref = strings.TrimSpace(ref)
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	var id string
	err = db.QueryRowContext(ctx, `SELECT id FROM documents WHERE name = ? ORDER BY updated_at_unixms DESC LIMIT 1`, ref).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return loadDocumentTx(ctx, db, ref)
	}
	if err != nil {
		return nil, false, err
	}
	return loadDocumentTx(ctx, db, id)
}

// SaveDocument writes the document row, replacing any previous snapshot.
// The forest is stored exactly as its nested node records; no extra per-node
// metadata is persisted.
func (s Store) SaveDocument(ctx context.Context, d *model.Document) error {
	if d == nil || strings.TrimSpace(d.ID) == "" {
		return errors.New("nil or id-less document")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	forestJSON, err := json.Marshal(d.Roots)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	d.UpdatedAt = now
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO documents(id, name, created_at_unixms, updated_at_unixms, forest_json)
		VALUES(?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.CreatedAt.UnixMilli(), d.UpdatedAt.UnixMilli(), string(forestJSON)); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteDocument removes a document row. Deleting an unknown id is a no-op.
func (s Store) DeleteDocument(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, strings.TrimSpace(id))
	return err
}

// CurrentDocumentID returns the workspace's current document id, if set.
func (s Store) CurrentDocumentID(ctx context.Context) (string, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "current_document_id").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// SetCurrentDocumentID records the workspace's current document id.
func (s Store) SetCurrentDocumentID(ctx context.Context, id string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`,
		"current_document_id", strings.TrimSpace(id))
	return err
}
