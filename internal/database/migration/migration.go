package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type bootstrapStep struct {
	Name string
	SQL  string
}

var steps = []bootstrapStep{
	{
		Name: "create_table_employees",
		SQL: `CREATE TABLE IF NOT EXISTS employees (
  id           SERIAL PRIMARY KEY,
  name         TEXT   NOT NULL DEFAULT '',
  mail_id      TEXT   NOT NULL DEFAULT '',
  job_title    TEXT   NOT NULL DEFAULT 'ProjectEngineer'
               CHECK (job_title IN ('ProjectEngineer', 'ProjectLead', 'ProjectManager')),
  mission      TEXT   NOT NULL DEFAULT 'SCV'
               CHECK (mission IN ('SCV', 'GUI', 'D2T')),
  project_name TEXT   NOT NULL DEFAULT '',
  reports_to   TEXT   NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_employees_reports_to",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_employees_reports_to ON employees (reports_to);`,
	},
}

// EnsureMigrated creates the employees table when it does not exist yet.
// It is idempotent and is a no-op once the table is present.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With(slog.String("db_host", dbHost))

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.employees') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
