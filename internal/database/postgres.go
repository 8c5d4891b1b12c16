// internal/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"imagify-backend/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		email          TEXT UNIQUE,
		credit_balance INTEGER NOT NULL DEFAULT 5,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS generations (
		id              UUID PRIMARY KEY,
		user_id         TEXT NOT NULL,
		prompt          TEXT NOT NULL,
		source          TEXT NOT NULL DEFAULT '',
		success         BOOLEAN NOT NULL,
		message         TEXT NOT NULL,
		credits_used    INTEGER NOT NULL DEFAULT 0,
		request_id      TEXT NOT NULL DEFAULT '',
		process_time_ms BIGINT NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS generations_user_created_idx ON generations (user_id, created_at DESC)`,
}

type Postgres struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewPostgres(cfg *config.Config, logger *zap.Logger) (*Postgres, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", cfg.Store.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	pg := &Postgres{DB: db, logger: logger}
	if err := pg.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return pg, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	p.logger.Info("PostgreSQL schema ready", zap.Int("statements", len(postgresSchema)))
	return nil
}

func (p *Postgres) Close(ctx context.Context) error {
	return p.DB.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}
