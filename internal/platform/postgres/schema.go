package postgres

import (
	"context"
	"fmt"

	"gameportal-backend/internal/common/logger"
)

// Bootstrap statements are idempotent so the service can run them on every
// start. Real migrations (column changes, backfills) stay out of scope.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE,
		name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		play_link TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS game_plays (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		game_id UUID NOT NULL REFERENCES games(id),
		duration INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		played_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_plays_user ON game_plays (user_id)`,
	`CREATE TABLE IF NOT EXISTS game_scores (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		game_id UUID NOT NULL REFERENCES games(id),
		score BIGINT NOT NULL,
		metadata JSONB,
		achieved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_scores_user ON game_scores (user_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		amount NUMERIC(20, 9) NOT NULL,
		tx_hash TEXT,
		status TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		token_symbol TEXT NOT NULL DEFAULT 'TON',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stream_url TEXT NOT NULL DEFAULT '',
		creator_address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_status ON events (status, starts_at)`,
}

// Bootstrap creates missing tables and indexes.
func (c *Client) Bootstrap(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}

	logger.Info().Int("statements", len(schemaStatements)).Msg("Schema bootstrap complete")
	return nil
}
