package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arloliu/tossframe/blob"
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/frame"
)

// ErrNotFound is returned for names that have no stored table.
var ErrNotFound = errs.ErrNotFound

// TableInfo describes a stored table without its data.
type TableInfo struct {
	Name        string
	Rows        int
	Runs        int
	Compression string
	Size        int
	CreatedAt   time.Time
}

// Store is a SQLite-backed table store. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and migrates its schema.
// The special path ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable encodes t with opts and stores it under name together with its
// per-id summaries. An existing table of the same name is replaced. Either
// everything is written or nothing is.
func (s *Store) SaveTable(ctx context.Context, name string, t *frame.Table[string], opts ...blob.EncoderOption) (TableInfo, error) {
	if name == "" {
		return TableInfo{}, fmt.Errorf("%w: empty table name", errs.ErrInvalidArgument)
	}

	data, err := blob.Encode(t, opts...)
	if err != nil {
		return TableInfo{}, fmt.Errorf("failed to encode table %q: %w", name, err)
	}
	decoded, err := blob.Decode[string](data)
	if err != nil {
		return TableInfo{}, fmt.Errorf("failed to verify table %q: %w", name, err)
	}

	info := TableInfo{
		Name:        name,
		Rows:        decoded.Len(),
		Runs:        decoded.RunCount(),
		Compression: decoded.Compression().String(),
		Size:        len(data),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TableInfo{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteTable(ctx, tx, name); err != nil {
		return TableInfo{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tables (name, row_count, run_count, compression, size, created_at, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		info.Name, info.Rows, info.Runs, info.Compression, info.Size, info.CreatedAt.UnixNano(), data,
	)
	if err != nil {
		return TableInfo{}, fmt.Errorf("failed to insert table %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO summaries (table_name, ord, id, trials, heads) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return TableInfo{}, fmt.Errorf("failed to prepare summaries: %w", err)
	}
	defer stmt.Close()

	for i, sum := range t.Summarize() {
		if _, err := stmt.ExecContext(ctx, name, i, sum.ID, sum.Trials, sum.Heads); err != nil {
			return TableInfo{}, fmt.Errorf("failed to insert summary %q of table %q: %w", sum.ID, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return TableInfo{}, fmt.Errorf("failed to commit table %q: %w", name, err)
	}

	return info, nil
}

// LoadTable decodes the table stored under name.
func (s *Store) LoadTable(ctx context.Context, name string) (*frame.Table[string], error) {
	b, err := s.LoadBlob(ctx, name)
	if err != nil {
		return nil, err
	}

	return b.Table(), nil
}

// LoadBlob returns the decoded blob stored under name, which supports id
// lookups without materializing the table.
func (s *Store) LoadBlob(ctx context.Context, name string) (*blob.TableBlob[string], error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM tables WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: table %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read table %q: %w", name, err)
	}

	b, err := blob.Decode[string](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode table %q: %w", name, err)
	}

	return b, nil
}

// ListTables returns every stored table ordered by name.
func (s *Store) ListTables(ctx context.Context) ([]TableInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, row_count, run_count, compression, size, created_at FROM tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var infos []TableInfo
	for rows.Next() {
		var info TableInfo
		var created int64
		if err := rows.Scan(&info.Name, &info.Rows, &info.Runs, &info.Compression, &info.Size, &created); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		info.CreatedAt = time.Unix(0, created).UTC()
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Summaries returns the stored per-id summaries of name in first-seen order.
func (s *Store) Summaries(ctx context.Context, name string) ([]frame.Summary[string], error) {
	if err := s.exists(ctx, name); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trials, heads FROM summaries WHERE table_name = ? ORDER BY ord`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries of %q: %w", name, err)
	}
	defer rows.Close()

	summaries := []frame.Summary[string]{}
	for rows.Next() {
		var sum frame.Summary[string]
		if err := rows.Scan(&sum.ID, &sum.Trials, &sum.Heads); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// DeleteTable removes name and its summaries.
func (s *Store) DeleteTable(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM tables WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete table %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: table %q", ErrNotFound, name)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM summaries WHERE table_name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete summaries of %q: %w", name, err)
	}

	return tx.Commit()
}

func (s *Store) exists(ctx context.Context, name string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tables WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: table %q", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up table %q: %w", name, err)
	}

	return nil
}

func deleteTable(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tables WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to replace table %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM summaries WHERE table_name = ?`, name); err != nil {
		return fmt.Errorf("failed to replace summaries of %q: %w", name, err)
	}

	return nil
}
