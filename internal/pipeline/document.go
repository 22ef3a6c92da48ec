// Package pipeline holds the per-document intake state machine.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leaseintake/internal/model"
)

// Status is a document's position in the intake pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Progress checkpoints reported while a document moves through the pipeline.
const (
	ProgressUploadStarted = 0
	ProgressUploadSent    = 50
	ProgressExtracting    = 75
	ProgressSaving        = 90
	ProgressDone          = 100
)

// ErrIllegalTransition is returned when a move is not allowed from the current status.
var ErrIllegalTransition = errors.New("illegal status transition")

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

var next = map[Status][]Status{
	StatusPending:    {StatusUploading},
	StatusUploading:  {StatusUploading, StatusProcessing},
	StatusProcessing: {StatusProcessing, StatusCompleted},
}

func allowed(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusError {
		return true
	}
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Event is emitted for every accepted transition.
type Event struct {
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	Status     Status    `json:"status"`
	Progress   int       `json:"progress"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Observer receives transition events. It is called synchronously from the
// goroutine driving the document.
type Observer func(Event)

// Document is one file moving through the pipeline. A Document is owned by a
// single goroutine; it is not safe for concurrent mutation.
type Document struct {
	ID          string             `json:"id"`
	FileName    string             `json:"file_name"`
	FileSize    int64              `json:"file_size"`
	ContentType string             `json:"content_type"`
	Status      Status             `json:"status"`
	Progress    int                `json:"progress"`
	Error       string             `json:"error,omitempty"`
	ProjectID   string             `json:"project_id,omitempty"`
	FileURL     string             `json:"file_url,omitempty"`
	LeaseID     string             `json:"lease_id,omitempty"`
	Lease       *model.LeaseRecord `json:"lease_data,omitempty"`

	observer Observer
}

// NewDocument returns a pending document. A nil observer is allowed.
func NewDocument(fileName string, size int64, contentType string, obs Observer) *Document {
	return &Document{
		ID:          uuid.NewString(),
		FileName:    fileName,
		FileSize:    size,
		ContentType: contentType,
		Status:      StatusPending,
		observer:    obs,
	}
}

// Advance moves to status with the given progress. Progress may not go backwards
// within the non-error states.
func (d *Document) Advance(to Status, progress int) error {
	if to == StatusError {
		return fmt.Errorf("%w: use Fail to enter %s", ErrIllegalTransition, StatusError)
	}
	if !allowed(d.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, d.Status, to)
	}
	if progress < d.Progress || progress > ProgressDone {
		return fmt.Errorf("%w: progress %d -> %d", ErrIllegalTransition, d.Progress, progress)
	}
	d.Status = to
	d.Progress = progress
	d.emit()
	return nil
}

// Complete records the persisted lease and enters the completed state.
func (d *Document) Complete(leaseID string, lease *model.LeaseRecord) error {
	if lease == nil {
		return fmt.Errorf("%w: completed without a lease", ErrIllegalTransition)
	}
	if !allowed(d.Status, StatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, d.Status, StatusCompleted)
	}
	d.LeaseID = leaseID
	d.Lease = lease
	d.Status = StatusCompleted
	d.Progress = ProgressDone
	d.emit()
	return nil
}

// Fail enters the error state with a non-empty message.
func (d *Document) Fail(msg string) error {
	if msg == "" {
		msg = "Document processing failed"
	}
	if !allowed(d.Status, StatusError) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, d.Status, StatusError)
	}
	d.Status = StatusError
	d.Progress = 0
	d.Error = msg
	d.Lease = nil
	d.emit()
	return nil
}

func (d *Document) emit() {
	if d.observer == nil {
		return
	}
	d.observer(Event{
		DocumentID: d.ID,
		FileName:   d.FileName,
		Status:     d.Status,
		Progress:   d.Progress,
		Error:      d.Error,
		At:         time.Now().UTC(),
	})
}
