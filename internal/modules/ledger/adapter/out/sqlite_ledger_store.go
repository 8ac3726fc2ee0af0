package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"questlog/internal/modules/ledger/domain"
	ledgerout "questlog/internal/modules/ledger/port/out"
	apperrors "questlog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteLedgerStore persists entries in a single append-only table.
// The rowid sequence doubles as append order, so "last entry" is the
// max id row.
type SQLiteLedgerStore struct {
	db *sql.DB
}

func NewSQLiteLedgerStore(dbPath string) (ledgerout.LedgerStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteLedgerStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteLedgerStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  at TEXT NOT NULL,
  kind TEXT NOT NULL,
  name TEXT NOT NULL,
  minutes INTEGER NOT NULL,
  amount REAL NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (s *SQLiteLedgerStore) Append(ctx context.Context, entry domain.Entry) error {
	const stmt = `INSERT INTO entries (at, kind, name, minutes, amount) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.At.Format(timeLayout),
		string(entry.Kind),
		entry.Name,
		entry.Minutes,
		entry.Amount,
	)
	if err != nil {
		return fmt.Errorf("%w: append entry: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteLedgerStore) RemoveLast(ctx context.Context) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, at, kind, name, minutes, amount FROM entries ORDER BY id DESC LIMIT 1`)
	var (
		id    int64
		entry domain.Entry
		at    string
		kind  string
	)
	if err := row.Scan(&id, &at, &kind, &entry.Name, &entry.Minutes, &entry.Amount); err != nil {
		if err == sql.ErrNoRows {
			return domain.Entry{}, apperrors.ErrEmptyLedger
		}
		return domain.Entry{}, fmt.Errorf("load last entry: %w", err)
	}
	parsed, err := time.Parse(timeLayout, at)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("parse entry time: %w", err)
	}
	entry.At = parsed
	entry.Kind = domain.Kind(kind)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: remove last entry: %v", apperrors.ErrPersistence, err)
	}
	return entry, nil
}

func (s *SQLiteLedgerStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("%w: clear entries: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteLedgerStore) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT at, kind, name, minutes, amount FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.Entry
	for rows.Next() {
		var (
			entry domain.Entry
			at    string
			kind  string
		)
		if err := rows.Scan(&at, &kind, &entry.Name, &entry.Minutes, &entry.Amount); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse entry time: %w", err)
		}
		entry.At = parsed
		entry.Kind = domain.Kind(kind)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
