// Package store persists completed conversation turns in Postgres. The log is
// append-only; readers only ever ask for a user's most recent turns.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/charla-ai/charla/bot/contract"
)

type Config struct {
	DSN             string        `envconfig:"DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"8"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" split_words:"true" default:"4"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" split_words:"true" default:"30m"`
}

type conversationRow struct {
	bun.BaseModel `bun:"table:conversations"`

	ID        string    `bun:"id,pk"`
	UserID    string    `bun:"user_id,notnull"`
	UserText  string    `bun:"user_text,notnull"`
	BotText   string    `bun:"bot_text,notnull"`
	Source    string    `bun:"source,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// Postgres is the bun-backed ConversationStore.
type Postgres struct {
	db *bun.DB
}

var _ contractx.ConversationStore = (*Postgres)(nil)

func New(cfg Config) (*Postgres, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", contractx.ErrValidation)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Postgres{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// EnsureSchema creates the conversations table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.NewCreateTable().
		Model((*conversationRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create conversations table: %w", err)
	}
	return nil
}

// Recent returns at most limit turns for the user, newest first.
func (p *Postgres) Recent(ctx context.Context, userID string, limit int) ([]contractx.ConversationRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	var rows []conversationRow
	err := p.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select recent conversations: %w", err)
	}

	records := make([]contractx.ConversationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, contractx.ConversationRecord{
			ID:        row.ID,
			UserID:    row.UserID,
			UserText:  row.UserText,
			BotText:   row.BotText,
			Source:    contractx.Source(row.Source),
			CreatedAt: row.CreatedAt,
		})
	}
	return records, nil
}

// Append writes one completed turn. Missing ID and CreatedAt are filled in
// and written back to the record.
func (p *Postgres) Append(ctx context.Context, rec *contractx.ConversationRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil conversation record", contractx.ErrValidation)
	}
	if strings.TrimSpace(rec.UserID) == "" {
		return fmt.Errorf("%w: conversation record needs a user id", contractx.ErrValidation)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	row := conversationRow{
		ID:        rec.ID,
		UserID:    rec.UserID,
		UserText:  rec.UserText,
		BotText:   rec.BotText,
		Source:    string(rec.Source),
		CreatedAt: rec.CreatedAt,
	}
	if _, err := p.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable. The readiness probe uses
// it.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
