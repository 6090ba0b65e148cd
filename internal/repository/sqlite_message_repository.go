package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brainscroller/site/internal/model"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(path string) (*sqlx.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// SQLiteMessageRepository stores messages in a local SQLite file.
type SQLiteMessageRepository struct {
	db    *sqlx.DB
	table string
}

// NewSQLiteMessageRepository creates a SQLiteMessageRepository writing to table.
func NewSQLiteMessageRepository(db *sqlx.DB, table string) *SQLiteMessageRepository {
	return &SQLiteMessageRepository{db: db, table: table}
}

var _ MessageRepository = (*SQLiteMessageRepository)(nil)

// Append inserts one messages row.
func (r *SQLiteMessageRepository) Append(ctx context.Context, msg *model.StoredMessage) error {
	query := `INSERT INTO ` + quoteIdent(r.table) + ` (id, name, email, subject, message, created_at, source)
		VALUES (:id, :name, :email, :subject, :message, :created_at, :source)`

	res, err := r.db.NamedExecContext(ctx, query, msg)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert message: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("insert message: %w", ErrNoRowsAffected)
	}
	return nil
}

// Ping checks the connection.
func (r *SQLiteMessageRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// quoteIdent quotes a table name for SQLite.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
