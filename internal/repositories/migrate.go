package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// Схема под оба драйвера: postgres в проде, sqlite3 для локальной разработки и тестов.
var schemas = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS assessment_sessions (
			id               TEXT PRIMARY KEY,
			name             VARCHAR(200) NOT NULL,
			phone            VARCHAR(20)  NOT NULL,
			email            VARCHAR(254) NOT NULL,
			terms_accepted   BOOLEAN      NOT NULL DEFAULT FALSE,
			otp              VARCHAR(6)   NOT NULL DEFAULT '',
			otp_expires_at   TIMESTAMPTZ  NULL,
			otp_verified     BOOLEAN      NOT NULL DEFAULT FALSE,
			current_step     INTEGER      NOT NULL DEFAULT 0,
			progress_percent INTEGER      NOT NULL DEFAULT 0,
			form_data        JSONB        NOT NULL DEFAULT '{}'::jsonb,
			created_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			completed_at     TIMESTAMPTZ  NULL,
			report_sent_at   TIMESTAMPTZ  NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment_sessions_created_at ON assessment_sessions (created_at DESC)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS assessment_sessions (
			id               TEXT PRIMARY KEY,
			name             TEXT      NOT NULL,
			phone            TEXT      NOT NULL,
			email            TEXT      NOT NULL,
			terms_accepted   BOOLEAN   NOT NULL DEFAULT 0,
			otp              TEXT      NOT NULL DEFAULT '',
			otp_expires_at   TIMESTAMP NULL,
			otp_verified     BOOLEAN   NOT NULL DEFAULT 0,
			current_step     INTEGER   NOT NULL DEFAULT 0,
			progress_percent INTEGER   NOT NULL DEFAULT 0,
			form_data        TEXT      NOT NULL DEFAULT '{}',
			created_at       TIMESTAMP NOT NULL,
			updated_at       TIMESTAMP NOT NULL,
			completed_at     TIMESTAMP NULL,
			report_sent_at   TIMESTAMP NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment_sessions_created_at ON assessment_sessions (created_at)`,
	},
}

// Migrate создаёт таблицы, если их ещё нет
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schemas[driver]
	if !ok {
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
