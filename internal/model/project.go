package model

import "time"

// ProjectStatus is the lifecycle label shown for a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPending   ProjectStatus = "pending"
)

// Project groups lease documents. DocumentCount grows by one per persisted lease.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	DocumentCount int           `json:"document_count"`
	Status        ProjectStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Stats are the dashboard totals.
type Stats struct {
	TotalProjects      int `json:"total_projects"`
	TotalDocuments     int `json:"total_documents"`
	ProcessedThisMonth int `json:"processed_this_month"`
}
