package repository

import (
	"context"

	"leaseintake/internal/model"
)

// ProjectRepository defines data access for projects using SQL queries only.
type ProjectRepository interface {
	// Create inserts a new project and returns the stored row.
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// FindByID returns ErrNotFound when the project does not exist.
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// List returns a page of projects, newest first, filtered by PageQuery.Search.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Project], error)

	// Delete removes a project and, through the foreign key, its lease rows.
	// Returns ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
