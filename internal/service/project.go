package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaseintake/internal/export"
	"leaseintake/internal/logger"
	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

const maxPageSize = 100

// ProjectListResult is the service-level DTO for paginated projects.
type ProjectListResult struct {
	Items []model.Project `json:"data"`
	Total int             `json:"total"`
}

// LeaseListResult is the service-level DTO for paginated leases.
type LeaseListResult struct {
	Items []model.LeaseDocument `json:"data"`
	Total int                   `json:"total"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// XLSXContentType is the MIME type of lease exports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProjectService covers project management and read access to persisted leases.
type ProjectService interface {
	Create(ctx context.Context, name, description string) (*model.Project, error)
	// List returns projects newest first; search filters by name.
	List(ctx context.Context, limit, offset int, search string) (*ProjectListResult, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	// Delete removes the project and its leases. Stored files are kept.
	Delete(ctx context.Context, id string) error
	ListLeases(ctx context.Context, projectID string, limit, offset int) (*LeaseListResult, error)
	GetLease(ctx context.Context, id string) (*model.LeaseDocument, error)
	// Export renders every lease of the project as an XLSX workbook.
	Export(ctx context.Context, projectID string) (*ExportFile, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type projectService struct {
	projects repository.ProjectRepository
	leases   repository.LeaseRepository
	now      func() time.Time
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(projects repository.ProjectRepository, leases repository.LeaseRepository) ProjectService {
	return &projectService{
		projects: projects,
		leases:   leases,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *projectService) Create(ctx context.Context, name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	now := s.now()
	p, err := s.projects.Create(ctx, &model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      model.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	logger.WithContext(ctx).Info("project.created", "project_id", p.ID)
	return p, nil
}

func (s *projectService) List(ctx context.Context, limit, offset int, search string) (*ProjectListResult, error) {
	limit, offset = pageBounds(limit, offset)
	res, err := s.projects.List(ctx, repository.PageQuery{
		Limit:  limit,
		Offset: offset,
		Search: strings.TrimSpace(search),
	})
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	logger.WithContext(ctx).Info("project.deleted", "project_id", id)
	return nil
}

func (s *projectService) ListLeases(ctx context.Context, projectID string, limit, offset int) (*LeaseListResult, error) {
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	res, err := s.leases.ListByProject(ctx, projectID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &LeaseListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *projectService) GetLease(ctx context.Context, id string) (*model.LeaseDocument, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.leases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeaseNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *projectService) Export(ctx context.Context, projectID string) (*ExportFile, error) {
	start := time.Now()
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	leases, err := s.leases.ListAllByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("query leases: %w", err)
	}
	data, err := export.LeasesXLSX(p, leases)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("export.xlsx.ok",
		"project_id", projectID,
		"rows", len(leases),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &ExportFile{FileName: export.FileName(p), ContentType: XLSXContentType, Data: data}, nil
}

func (s *projectService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.leases.Stats(ctx)
}
