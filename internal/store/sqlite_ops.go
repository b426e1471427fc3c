// sqlite_ops.go provides SQLite connection management and low-level helpers.
//
// This is the only file that imports the SQLite driver, making it easier to
// swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows a search to read while a scan writes. The 5-second busy timeout
// prevents "database is locked" errors without waiting forever on a stuck
// connection. Foreign keys are enabled explicitly because SQLite defaults
// them off and the cascade rules for links, notes and favorites depend on
// them.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the metadata store and full-text index over a
// single SQLite database file with an FTS5 virtual table.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
// The pragmas ride in the DSN rather than a db.Exec after opening: database/sql
// pools connections, and an Exec'd pragma configures only whichever connection
// served that call. foreign_keys and busy_timeout must hold on every
// connection, or a delete served by an unconfigured one skips the cascades.
func Open(path string) (*SQLiteStore, error) {
	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// sql.Open is lazy; ping so a bad path or file fails here, not on the
	// first query.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables, the FTS5 index and triggers if they don't exist.
// Safe to call multiple times; the schema uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for maintenance queries and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL, removing the -wal and -shm files. Called on graceful shutdown.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Tx runs fn inside a transaction. A nil return commits; an error rolls the
// whole transaction back, so no partial writes survive a failure.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure from
// the driver, so callers can surface ErrAlreadyExists instead of a generic
// storage error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanDoc extracts a Document from a database row, mapping NULL metadata
// columns to empty strings.
func scanDoc(sc scanner) (Document, error) {
	var d Document
	var manuf, model, dtype, kw, revNum, revDate, status, models, equip sql.NullString

	err := sc.Scan(&d.ID, &d.Filename, &d.Filepath, &manuf, &model, &dtype, &kw,
		&d.LastModified, &revNum, &revDate, &status, &models, &equip)
	if err != nil {
		return d, err
	}

	d.Manufacturer = manuf.String
	d.DeviceModel = model.String
	d.DocumentType = dtype.String
	d.Keywords = kw.String
	d.RevisionNumber = revNum.String
	d.RevisionDate = revDate.String
	d.Status = status.String
	d.ApplicableModels = models.String
	d.AssociatedTestEquipment = equip.String
	return d, nil
}

// scanDocument converts sql.ErrNoRows to ErrNotFound for consistent error
// handling at call sites.
func (s *SQLiteStore) scanDocument(row *sql.Row) (*Document, error) {
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// scanDocuments iterates over query results, collecting documents into a slice.
func (s *SQLiteStore) scanDocuments(rows *sql.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// nilIfEmpty maps empty strings to NULL so that COALESCE-based merges can
// distinguish "never set" from a real value.
func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const docColumns = `id, filename, filepath, manufacturer, device_model, document_type, keywords,
	last_modified, revision_number, revision_date, status, applicable_models, associated_test_equipment`
