package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations creates the applications table and the orphan ledger.
var Migrations = []Migration{
	{
		Name: "create_applications",
		SQL: `
			CREATE TABLE IF NOT EXISTS applications (
				id                   UUID PRIMARY KEY,
				job_slug             TEXT NOT NULL,
				name                 TEXT NOT NULL,
				email                TEXT NOT NULL,
				age                  INTEGER,
				country              TEXT NOT NULL DEFAULT '',
				state                TEXT NOT NULL DEFAULT '',
				whatsapp             TEXT NOT NULL DEFAULT '',
				qualification        TEXT NOT NULL DEFAULT '',
				qualification_other  TEXT,
				degree_name          TEXT NOT NULL DEFAULT '',
				heard_from           TEXT NOT NULL DEFAULT '',
				heard_from_other     TEXT,
				motivation           TEXT NOT NULL DEFAULT '',
				consent              BOOLEAN NOT NULL DEFAULT FALSE,
				experiences          JSONB NOT NULL DEFAULT '[]'::jsonb,
				resume_path          TEXT,
				cover_letter_path    TEXT,
				project_summary_path TEXT,
				attachments          JSONB NOT NULL DEFAULT '[]'::jsonb,
				custom_answers       JSONB NOT NULL DEFAULT '{}'::jsonb,
				source_ip            TEXT NOT NULL DEFAULT '',
				created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
	{
		Name: "index_applications_job_created",
		SQL:  `CREATE INDEX IF NOT EXISTS applications_job_slug_created_at_idx ON applications (job_slug, created_at DESC);`,
	},
	{
		Name: "nullable_other_clarifications",
		SQL: `
			ALTER TABLE applications
				ALTER COLUMN qualification_other DROP NOT NULL,
				ALTER COLUMN qualification_other DROP DEFAULT,
				ALTER COLUMN heard_from_other DROP NOT NULL,
				ALTER COLUMN heard_from_other DROP DEFAULT;
			UPDATE applications SET qualification_other = NULL WHERE qualification_other = '';
			UPDATE applications SET heard_from_other = NULL WHERE heard_from_other = '';`,
	},
	{
		Name: "create_orphaned_attachments",
		SQL: `
			CREATE TABLE IF NOT EXISTS orphaned_attachments (
				id         UUID PRIMARY KEY,
				job_slug   TEXT NOT NULL DEFAULT '',
				email      TEXT NOT NULL DEFAULT '',
				paths      TEXT[] NOT NULL,
				cause      TEXT NOT NULL DEFAULT '',
				status     TEXT NOT NULL DEFAULT 'pending',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
}

// Migrate applies every migration in order.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if logger != nil {
			logger.Printf("migration applied: %s", m.Name)
		}
	}
	return nil
}
