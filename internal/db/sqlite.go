// Package db provides SQLite storage for timeline items.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// dateTimeLayout stores local wall-clock time with millisecond precision.
// It sorts lexically, which the range queries rely on.
const dateTimeLayout = "2006-01-02T15:04:05.000"

// SQLite implements item.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Open creates the parent directory of path if needed and opens the
// repository there.
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return New(path)
}

// CreateItem adds a new item to the repository.
// An empty ID is replaced with a generated one.
func (s *SQLite) CreateItem(ctx context.Context, it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if it.ID == "" {
		it.ID = item.NewID()
	}

	query := `
		INSERT INTO items (id, title, start_date, end_date, position, created_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM items), ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		it.ID,
		it.Title,
		formatDateTime(it.StartDate),
		formatDateTime(it.EndDate),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

// CreateItems adds multiple items in a batch using a transaction.
func (s *SQLite) CreateItems(ctx context.Context, items []*item.Item) error {
	if len(items) == 0 {
		return nil
	}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM items`).Scan(&position); err != nil {
		return fmt.Errorf("reading position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, title, start_date, end_date, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	createdAt := time.Now().Format(time.RFC3339)
	for _, it := range items {
		if it.ID == "" {
			it.ID = item.NewID()
		}
		position++
		_, err := stmt.ExecContext(ctx,
			it.ID,
			it.Title,
			formatDateTime(it.StartDate),
			formatDateTime(it.EndDate),
			position,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("inserting item %q: %w", it.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLite) GetItem(ctx context.Context, id string) (*item.Item, error) {
	query := `SELECT id, title, start_date, end_date FROM items WHERE id = ?`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, item.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return &it, nil
}

// ListItems returns all items in insertion order.
func (s *SQLite) ListItems(ctx context.Context) ([]item.Item, error) {
	query := `
		SELECT id, title, start_date, end_date
		FROM items
		ORDER BY position, start_date
	`
	return s.queryItems(ctx, query)
}

// ListItemsByYear returns the items overlapping year, in insertion order.
func (s *SQLite) ListItemsByYear(ctx context.Context, year int) ([]item.Item, error) {
	query := `
		SELECT id, title, start_date, end_date
		FROM items
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY position, start_date
	`
	return s.queryItems(ctx, query,
		formatDateTime(dateutil.YearEnd(year)),
		formatDateTime(dateutil.YearStart(year)),
	)
}

func (s *SQLite) queryItems(ctx context.Context, query string, args ...any) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// UpdateItem replaces the title and dates of an existing item.
func (s *SQLite) UpdateItem(ctx context.Context, it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	query := `UPDATE items SET title = ?, start_date = ?, end_date = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		it.Title,
		formatDateTime(it.StartDate),
		formatDateTime(it.EndDate),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %s: %w", it.ID, item.ErrNotFound)
	}

	return nil
}

// DeleteItem removes an item by ID.
func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %s: %w", id, item.ErrNotFound)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (item.Item, error) {
	var (
		it         item.Item
		start, end string
	)
	if err := row.Scan(&it.ID, &it.Title, &start, &end); err != nil {
		return item.Item{}, err
	}

	var err error
	it.StartDate, err = parseDateTime(start)
	if err != nil {
		return item.Item{}, fmt.Errorf("parsing start date: %w", err)
	}
	it.EndDate, err = parseDateTime(end)
	if err != nil {
		return item.Item{}, fmt.Errorf("parsing end date: %w", err)
	}
	return it, nil
}

func formatDateTime(t time.Time) string {
	return t.In(time.Local).Format(dateTimeLayout)
}

// parseDateTime parses a stored timestamp as local wall-clock time.
// Date-only values written by older exports are accepted as midnight.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
