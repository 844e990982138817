package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order on every startup; each statement must be
// safe to run again.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `
		CREATE TABLE IF NOT EXISTS users (
			id           UUID PRIMARY KEY,
			external_id  TEXT NOT NULL UNIQUE,
			name         TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			industry     TEXT NOT NULL DEFAULT '',
			sub_industry TEXT NOT NULL DEFAULT '',
			bio          TEXT NOT NULL DEFAULT '',
			experience   INT  NOT NULL DEFAULT 0,
			skills       TEXT[] NOT NULL DEFAULT '{}',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "create_resumes",
		SQL: `
		CREATE TABLE IF NOT EXISTS resumes (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "create_cover_letters",
		SQL: `
		CREATE TABLE IF NOT EXISTS cover_letters (
			id              UUID PRIMARY KEY,
			user_id         UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_name    TEXT NOT NULL,
			job_title       TEXT NOT NULL,
			job_description TEXT NOT NULL DEFAULT '',
			content         TEXT NOT NULL,
			status          TEXT NOT NULL DEFAULT 'completed',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "index_cover_letters_user",
		SQL:  `CREATE INDEX IF NOT EXISTS cover_letters_user_created_idx ON cover_letters (user_id, created_at DESC);`,
	},
}

// RunMigrations executes all migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	logger := log.With().Str("component", "migration").Logger()
	logger.Info().Int("count", len(Migrations)).Msg("starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return errors.Wrapf(err, "migration %s", m.Name)
		}
		logger.Debug().Str("name", m.Name).Msg("migration completed")
	}

	logger.Info().Msg("all migrations completed")
	return nil
}
