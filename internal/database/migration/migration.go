package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name           TEXT        NOT NULL,
  description    TEXT,
  document_count INTEGER     NOT NULL DEFAULT 0 CHECK (document_count >= 0),
  status         TEXT        NOT NULL DEFAULT 'active',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_projects_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_projects_name ON projects (lower(name));`,
	},
	{
		Name: "create_table_lease_documents",
		SQL: `CREATE TABLE IF NOT EXISTS lease_documents (
  id                      UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  project_id              UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  file_name               TEXT        NOT NULL,
  file_url                TEXT        NOT NULL,
  tenant_company          TEXT,
  tenant_contact          TEXT,
  tenant_phone            TEXT,
  tenant_email            TEXT,
  tenant_address          TEXT,
  landlord_company        TEXT,
  landlord_contact        TEXT,
  landlord_phone          TEXT,
  landlord_email          TEXT,
  landlord_address        TEXT,
  property_address        TEXT,
  property_suite          TEXT,
  property_square_footage TEXT,
  property_type           TEXT,
  property_floors         TEXT,
  base_rent               TEXT,
  rent_per_sqft           TEXT,
  security_deposit        TEXT,
  cam_charges             TEXT,
  utilities               TEXT,
  escalations             TEXT,
  lease_start_date        TEXT,
  lease_end_date          TEXT,
  lease_term              TEXT,
  renewal_options         TEXT,
  early_termination       TEXT,
  parking_spaces          TEXT,
  ti_allowance            TEXT,
  rent_abatements         TEXT,
  assignment_rights       TEXT,
  sublease_rights         TEXT,
  triple_net              TEXT,
  percentage_rent         TEXT,
  default_clauses         TEXT,
  insurance_requirements  TEXT,
  raw_lease_data          JSONB       NOT NULL,
  status                  TEXT        NOT NULL DEFAULT 'processed',
  processed_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_lease_documents_project_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lease_documents_project_id ON lease_documents (project_id, created_at);`,
	},
	{
		Name: "create_index_lease_documents_processed_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_lease_documents_processed_at ON lease_documents (processed_at);`,
	},
}

const (
	sentinelQuery = "SELECT to_regclass('public.lease_documents') IS NOT NULL"
	// lockQuery serialises concurrent replicas; the lock is released with the transaction.
	lockQuery = "SELECT pg_advisory_xact_lock(hashtext('leaseintake_schema'))"
)

type migrationLog struct {
	loc    *time.Location
	dbHost string
	start  time.Time
}

func (l migrationLog) emit(event, status string, fields map[string]any) {
	data := map[string]any{
		"component":   "database",
		"event":       event,
		"status":      status,
		"db_host":     l.dbHost,
		"duration_ms": time.Since(l.start).Milliseconds(),
	}
	for k, v := range fields {
		data[k] = v
	}
	logJSON(l.loc, data)
}

// EnsureMigrated creates the projects and lease_documents schema when the
// lease_documents table is missing. All steps run in one transaction.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	lg := migrationLog{loc: loc, dbHost: dbHost, start: time.Now()}
	lg.emit("db_migration_check", "starting", nil)

	exists, err := schemaExists(ctx, db)
	if err != nil {
		lg.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	if exists {
		lg.emit("db_migration_skip", "success", map[string]any{"msg": "schema already exists, skipping migration"})
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		lg.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, lockQuery); err != nil {
		lg.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	// Another replica may have finished while we waited for the lock.
	if exists, err = schemaExists(ctx, tx); err != nil {
		lg.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	if exists {
		lg.emit("db_migration_skip", "success", map[string]any{"msg": "schema created concurrently"})
		return nil
	}

	lg.emit("db_migration_start", "in_progress", map[string]any{"steps": len(steps)})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			lg.emit("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		lg.emit("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if err := tx.Commit(); err != nil {
		lg.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("commit migration: %w", err)
	}

	lg.emit("db_migration_success", "success", nil)
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func schemaExists(ctx context.Context, q queryRower) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sentinel table: %w", err)
	}
	return exists, nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
