package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/leozw/domain-scout/internal/config"
	"github.com/leozw/domain-scout/internal/portfolio"
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolio (
    id            UUID PRIMARY KEY,
    domain        TEXT NOT NULL,
    bot_id        TEXT NOT NULL,
    strategy      TEXT NOT NULL,
    category      TEXT NOT NULL,
    is_premium    BOOLEAN NOT NULL DEFAULT FALSE,
    premium_price INTEGER NOT NULL DEFAULT 0,
    registrar     TEXT NOT NULL,
    acquired_at   TIMESTAMPTZ NOT NULL
)`

// PortfolioRepo is the Postgres-backed portfolio store.
type PortfolioRepo struct {
	db *sqlx.DB
}

func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func NewPortfolioRepo(db *sqlx.DB) (*PortfolioRepo, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &PortfolioRepo{db: db}, nil
}

func (r *PortfolioRepo) AddAcquiredDomain(ctx context.Context, entry *portfolio.Entry) error {
	query := `
        INSERT INTO portfolio (
            id, domain, bot_id, strategy, category,
            is_premium, premium_price, registrar, acquired_at
        ) VALUES (
            :id, :domain, :bot_id, :strategy, :category,
            :is_premium, :premium_price, :registrar, :acquired_at
        )`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *PortfolioRepo) ListDomains(ctx context.Context) ([]*portfolio.Entry, error) {
	entries := []*portfolio.Entry{}
	query := `SELECT * FROM portfolio ORDER BY acquired_at DESC`

	err := r.db.SelectContext(ctx, &entries, query)
	return entries, err
}
