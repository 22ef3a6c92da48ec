package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

// LeasePostgres is a PostgreSQL implementation of repository.LeaseRepository.
type LeasePostgres struct {
	db *sql.DB
}

// NewLeasePostgres creates a new LeasePostgres repository.
func NewLeasePostgres(db *sql.DB) *LeasePostgres {
	return &LeasePostgres{db: db}
}

var _ repository.LeaseRepository = (*LeasePostgres)(nil)

const leaseColumns = `id, project_id, file_name, file_url, raw_lease_data, status, processed_at, created_at`

// insertLeaseSQL lists the fixed columns followed by every flattened lease field.
var insertLeaseSQL = buildInsertLeaseSQL()

func buildInsertLeaseSQL() string {
	cols := []string{"id", "project_id", "file_name", "file_url", "raw_lease_data", "status", "processed_at"}
	for _, c := range (model.LeaseRecord{}).Flatten() {
		cols = append(cols, c.Name)
	}
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO lease_documents (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(ph, ", ") + ") RETURNING created_at"
}

// Save inserts the lease and bumps the project's document_count atomically.
func (r *LeasePostgres) Save(ctx context.Context, doc *model.LeaseDocument) (*model.LeaseDocument, error) {
	raw := doc.Raw
	if len(raw) == 0 {
		b, err := json.Marshal(doc.Lease)
		if err != nil {
			return nil, fmt.Errorf("marshal lease: %w", err)
		}
		raw = b
	}

	args := []any{doc.ID, doc.ProjectID, doc.FileName, doc.FileURL, string(raw), doc.Status, doc.ProcessedAt}
	for _, c := range doc.Lease.Flatten() {
		args = append(args, c.SQLValue())
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := *doc
	out.Raw = raw
	if err := tx.QueryRowContext(ctx, insertLeaseSQL, args...).Scan(&out.CreatedAt); err != nil {
		if isForeignKeyViolation(err) || isMalformedID(err) {
			return nil, repository.ErrProjectNotFound
		}
		return nil, fmt.Errorf("insert lease: %w", err)
	}

	const qCount = `
		UPDATE projects
		SET document_count = document_count + 1, updated_at = now()
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, qCount, doc.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("increment document_count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrProjectNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

func scanLease(s scanner) (*model.LeaseDocument, error) {
	var (
		d   model.LeaseDocument
		raw []byte
	)
	if err := s.Scan(&d.ID, &d.ProjectID, &d.FileName, &d.FileURL, &raw, &d.Status, &d.ProcessedAt, &d.CreatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d.Lease); err != nil {
			return nil, fmt.Errorf("decode raw_lease_data for %s: %w", d.ID, err)
		}
		d.Raw = json.RawMessage(raw)
	}
	return &d, nil
}

// FindByID fetches a single lease by its ID.
func (r *LeasePostgres) FindByID(ctx context.Context, id string) (*model.LeaseDocument, error) {
	const q = `SELECT ` + leaseColumns + ` FROM lease_documents WHERE id = $1`
	d, err := scanLease(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if IsNoRowsError(err) || isMalformedID(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListByProject returns one page of a project's leases and the project's total.
func (r *LeasePostgres) ListByProject(ctx context.Context, projectID string, pq repository.PageQuery) (*repository.PageResult[model.LeaseDocument], error) {
	const qCount = `SELECT COUNT(*) FROM lease_documents WHERE project_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, projectID).Scan(&total); err != nil {
		if isMalformedID(err) {
			return &repository.PageResult[model.LeaseDocument]{Items: []model.LeaseDocument{}}, nil
		}
		return nil, err
	}

	const qList = `
		SELECT ` + leaseColumns + `
		FROM lease_documents
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	items, err := r.query(ctx, qList, projectID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.LeaseDocument]{Items: items, Total: total}, nil
}

// ListAllByProject returns every lease of a project in insertion order.
func (r *LeasePostgres) ListAllByProject(ctx context.Context, projectID string) ([]model.LeaseDocument, error) {
	const q = `
		SELECT ` + leaseColumns + `
		FROM lease_documents
		WHERE project_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.query(ctx, q, projectID)
}

func (r *LeasePostgres) query(ctx context.Context, q string, args ...any) ([]model.LeaseDocument, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		if isMalformedID(err) {
			return []model.LeaseDocument{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LeaseDocument, 0)
	for rows.Next() {
		d, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Stats counts rows directly so the totals never depend on the cached project counters.
func (r *LeasePostgres) Stats(ctx context.Context) (*model.Stats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM lease_documents),
			(SELECT COUNT(*) FROM lease_documents WHERE processed_at >= date_trunc('month', now()))
	`
	var s model.Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.TotalProjects, &s.TotalDocuments, &s.ProcessedThisMonth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.Stats{}, nil
		}
		return nil, err
	}
	return &s, nil
}
