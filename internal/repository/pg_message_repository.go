package repository

import (
	"context"
	"fmt"

	"github.com/brainscroller/site/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgExecer is the subset of *pgxpool.Pool used by PgMessageRepository.
type pgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	db    pgExecer
	table string
}

// NewPgMessageRepository creates a PgMessageRepository writing to table.
// Pass a *pgxpool.Pool as db.
func NewPgMessageRepository(db pgExecer, table string) *PgMessageRepository {
	return &PgMessageRepository{db: db, table: table}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

// Append inserts one messages row.
func (r *PgMessageRepository) Append(ctx context.Context, msg *model.StoredMessage) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO `+pgx.Identifier{r.table}.Sanitize()+` (id, name, email, subject, message, created_at, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt, msg.Source,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert message: %w", ErrNoRowsAffected)
	}
	return nil
}
