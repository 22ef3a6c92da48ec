package repository

import (
	"context"

	"leaseintake/internal/model"
)

// LeaseRepository defines data access for persisted lease documents.
type LeaseRepository interface {
	// Save inserts the lease row and increments the owning project's document_count
	// in a single transaction. Returns ErrProjectNotFound when the project is missing;
	// in that case nothing is written.
	Save(ctx context.Context, doc *model.LeaseDocument) (*model.LeaseDocument, error)

	// FindByID returns ErrNotFound when the lease does not exist.
	FindByID(ctx context.Context, id string) (*model.LeaseDocument, error)

	// ListByProject returns a page of a project's leases, newest first.
	ListByProject(ctx context.Context, projectID string, pq PageQuery) (*PageResult[model.LeaseDocument], error)

	// ListAllByProject returns every lease of a project, oldest first.
	ListAllByProject(ctx context.Context, projectID string) ([]model.LeaseDocument, error)

	// Stats returns dashboard totals; "this month" is evaluated in the database's time zone.
	Stats(ctx context.Context) (*model.Stats, error)
}
