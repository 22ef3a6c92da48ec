package postgres

import (
	"context"
	"database/sql"

	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, name, description, document_count, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*model.Project, error) {
	var (
		p    model.Project
		desc sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &desc, &p.DocumentCount, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = desc.String
	return &p, nil
}

// Create inserts a new project row and returns the stored record.
func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	const q = `
		INSERT INTO projects (id, name, description, document_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.DocumentCount,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProject(row)
}

// FindByID fetches a single project by its ID.
func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if IsNoRowsError(err) || isMalformedID(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns projects using LIMIT/OFFSET pagination and a total count.
// An empty Search matches every project.
func (r *ProjectPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pq.Search).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Search, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Project]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a project by ID. Lease rows go with it via ON DELETE CASCADE.
func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		if isMalformedID(err) {
			return repository.ErrNotFound
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
