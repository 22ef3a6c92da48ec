package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"leaseintake/internal/config"
	"leaseintake/internal/extract"
	"leaseintake/internal/llm"
	"leaseintake/internal/logger"
	"leaseintake/internal/metrics"
	"leaseintake/internal/model"
	"leaseintake/internal/pipeline"
	"leaseintake/internal/repository"
	"leaseintake/internal/storage"
)

const (
	defaultMaxFileBytes = 50 << 20
	defaultFolder       = "lease-processor"
	previewChars        = 1000
	sniffBytes          = 3072

	saveMessage = "Lease data saved successfully"
)

// AllowedContentTypes are the declared MIME types accepted for upload.
var AllowedContentTypes = []string{
	extract.MimePDF,
	extract.MimeDOC,
	extract.MimeDOCX,
	extract.MimeJPEG,
	extract.MimePNG,
}

// FileInput is one uploaded file as received from the client.
type FileInput struct {
	Reader      io.Reader
	FileName    string
	ContentType string
	// Size is the declared byte length; it must be known.
	Size int64
}

// ProjectTarget selects an existing project by ID or names a new one to create.
type ProjectTarget struct {
	ID          string
	Name        string
	Description string
}

// UploadInput is one file destined for a project.
type UploadInput struct {
	File    FileInput
	Project ProjectTarget
}

// UploadResult describes a stored file.
type UploadResult struct {
	FileURL   string `json:"fileUrl"`
	PublicID  string `json:"publicId"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	ProjectID string `json:"projectId"`
}

// ProcessInput references a stored file to analyse.
type ProcessInput struct {
	FileURL   string `json:"fileUrl"`
	FileName  string `json:"fileName"`
	ProjectID string `json:"projectId"`
}

// ProcessResult is the structured analysis of one document.
type ProcessResult struct {
	LeaseData     *model.LeaseRecord `json:"leaseData"`
	Raw           json.RawMessage    `json:"-"`
	ExtractedText string             `json:"extractedText"`
	FileName      string             `json:"fileName"`
	ProjectID     string             `json:"projectId"`
}

// SaveInput is an analysed lease to persist.
type SaveInput struct {
	LeaseData *model.LeaseRecord `json:"leaseData"`
	Raw       json.RawMessage    `json:"-"`
	ProjectID string             `json:"projectId"`
	FileName  string             `json:"fileName"`
	FileURL   string             `json:"fileUrl"`
}

// SaveResult identifies the stored lease.
type SaveResult struct {
	LeaseID string `json:"leaseId"`
	Message string `json:"message"`
}

// IntakeService runs documents through upload, text extraction, structured
// extraction and persistence.
type IntakeService interface {
	// Upload validates the file, resolves the project and stores the file.
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)

	// Process extracts text from a stored file and structures it into a lease record.
	Process(ctx context.Context, in ProcessInput) (*ProcessResult, error)

	// Save persists an analysed lease and counts it against its project.
	Save(ctx context.Context, in SaveInput) (*SaveResult, error)

	// Run drives one document through every step, reporting each status change to obs.
	// The returned document is terminal: completed or error.
	Run(ctx context.Context, in UploadInput, obs pipeline.Observer) *pipeline.Document

	// RunBatch resolves the project once, then runs every file concurrently.
	// Documents are returned in input order; obs may be called from several goroutines.
	RunBatch(ctx context.Context, target ProjectTarget, files []FileInput, obs pipeline.Observer) []*pipeline.Document
}

type intakeService struct {
	store     storage.Storage
	projects  repository.ProjectRepository
	leases    repository.LeaseRepository
	extractor extract.TextExtractor
	analyzer  llm.LeaseExtractor
	metrics   *metrics.Intake
	tracer    trace.Tracer

	maxFileBytes int64
	folder       string
	now          func() time.Time
}

// IntakeDeps groups the adapters used by the intake service.
type IntakeDeps struct {
	Store     storage.Storage
	Projects  repository.ProjectRepository
	Leases    repository.LeaseRepository
	Extractor extract.TextExtractor
	Analyzer  llm.LeaseExtractor
	// Metrics may be nil.
	Metrics *metrics.Intake
}

// NewIntakeService constructs a new IntakeService.
func NewIntakeService(d IntakeDeps, cfg config.UploadConfig) IntakeService {
	s := &intakeService{
		store:        d.Store,
		projects:     d.Projects,
		leases:       d.Leases,
		extractor:    d.Extractor,
		analyzer:     d.Analyzer,
		metrics:      d.Metrics,
		tracer:       otel.Tracer("leaseintake/service"),
		maxFileBytes: cfg.MaxFileBytes,
		folder:       strings.Trim(cfg.Folder, "/"),
		now:          func() time.Time { return time.Now().UTC() },
	}
	if s.maxFileBytes <= 0 {
		s.maxFileBytes = defaultMaxFileBytes
	}
	if s.folder == "" {
		s.folder = defaultFolder
	}
	return s
}

// step wraps one pipeline step in a span and records its metrics.
func (s *intakeService) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "intake."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.Step(name, err, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Message(err))
	}
	return err
}

func (s *intakeService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	var res *UploadResult
	err := s.step(ctx, metrics.StepUpload, func(ctx context.Context) error {
		file, err := s.validateFile(in.File)
		if err != nil {
			return err
		}
		project, err := s.resolveProject(ctx, in.Project)
		if err != nil {
			return err
		}
		res, err = s.put(ctx, file, project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// validateFile checks presence, declared type and size. An unspecific declared
// type is replaced by the type sniffed from the leading bytes.
func (s *intakeService) validateFile(f FileInput) (FileInput, error) {
	if f.Reader == nil || strings.TrimSpace(f.FileName) == "" {
		return f, ErrNoFile
	}
	if f.Size > s.maxFileBytes {
		return f, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, f.Size)
	}

	ct := baseType(f.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		head := make([]byte, sniffBytes)
		n, err := io.ReadFull(f.Reader, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return f, fmt.Errorf("%w: read: %v", ErrUploadFailed, err)
		}
		head = head[:n]
		ct = baseType(extract.SniffMIME(head))
		f.Reader = io.MultiReader(bytes.NewReader(head), f.Reader)
	}
	if !allowedType(ct) {
		return f, fmt.Errorf("%w: %s", ErrInvalidFileType, ct)
	}
	f.ContentType = ct
	return f, nil
}

func baseType(ct string) string {
	t, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

func allowedType(ct string) bool {
	for _, a := range AllowedContentTypes {
		if ct == a {
			return true
		}
	}
	return false
}

// resolveProject returns the project named by target, creating it when only a name is given.
func (s *intakeService) resolveProject(ctx context.Context, target ProjectTarget) (*model.Project, error) {
	if id := strings.TrimSpace(target.ID); id != "" {
		p, err := s.projects.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("%w: find project: %v", ErrUploadFailed, err)
		}
		return p, nil
	}

	name := strings.TrimSpace(target.Name)
	if name == "" {
		return nil, ErrProjectRequired
	}
	now := s.now()
	p, err := s.projects.Create(ctx, &model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(target.Description),
		Status:      model.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create project: %v", ErrUploadFailed, err)
	}
	logger.WithContext(ctx).Info("intake.project.created", "project_id", p.ID, "name", p.Name)
	return p, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectKey is <folder>/<projectID>/<unix millis>-<sanitised file name>.
func (s *intakeService) objectKey(projectID, fileName string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(strings.ReplaceAll(fileName, "\\", "/")), "_")
	return fmt.Sprintf("%s/%s/%d-%s", s.folder, projectID, s.now().UnixMilli(), name)
}

func (s *intakeService) put(ctx context.Context, f FileInput, projectID string) (*UploadResult, error) {
	key := s.objectKey(projectID, f.FileName)
	info, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		FileName:    f.FileName,
		Metadata: map[string]string{
			"original-filename": f.FileName,
			"project-id":        projectID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put: %v", ErrUploadFailed, err)
	}
	url, err := s.store.ObjectURL(ctx, info.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: object url: %v", ErrUploadFailed, err)
	}

	logger.WithContext(ctx).Info("intake.upload.ok",
		"project_id", projectID,
		"key", info.Key,
		"size", f.Size,
		"content_type", f.ContentType,
	)
	return &UploadResult{
		FileURL:   url,
		PublicID:  info.Key,
		FileName:  f.FileName,
		FileSize:  f.Size,
		ProjectID: projectID,
	}, nil
}

func (s *intakeService) Process(ctx context.Context, in ProcessInput) (*ProcessResult, error) {
	if strings.TrimSpace(in.FileURL) == "" {
		return nil, ErrNoFileURL
	}
	log := logger.WithContext(ctx)

	var text string
	err := s.step(ctx, metrics.StepExtract, func(ctx context.Context) error {
		var err error
		text, err = s.extractor.Extract(ctx, in.FileURL, in.FileName)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return nil
	})
	if err != nil {
		log.Error("intake.extract.failed", "file_name", in.FileName, "error", err)
		return nil, err
	}

	var (
		rec *model.LeaseRecord
		raw json.RawMessage
	)
	err = s.step(ctx, metrics.StepAnalyze, func(ctx context.Context) error {
		var err error
		rec, raw, err = s.analyzer.Extract(ctx, text)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, llm.ErrEmptyAnalysis):
			return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
		case errors.Is(err, llm.ErrMalformedResult):
			return fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
		default:
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	})
	if err != nil {
		log.Error("intake.analyze.failed", "file_name", in.FileName, "error", err)
		return nil, err
	}

	log.Info("intake.process.ok", "file_name", in.FileName, "text_len", len(text))
	return &ProcessResult{
		LeaseData:     rec,
		Raw:           raw,
		ExtractedText: preview(text),
		FileName:      in.FileName,
		ProjectID:     in.ProjectID,
	}, nil
}

// preview returns the first previewChars characters, marking a cut with "...".
func preview(text string) string {
	p := llm.Truncate(text, previewChars)
	if len(p) < len(text) {
		return p + "..."
	}
	return p
}

func (s *intakeService) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	if in.LeaseData == nil || strings.TrimSpace(in.ProjectID) == "" {
		return nil, ErrMissingData
	}

	var stored *model.LeaseDocument
	err := s.step(ctx, metrics.StepSave, func(ctx context.Context) error {
		var err error
		stored, err = s.leases.Save(ctx, &model.LeaseDocument{
			ID:          uuid.NewString(),
			ProjectID:   strings.TrimSpace(in.ProjectID),
			FileName:    in.FileName,
			FileURL:     in.FileURL,
			Lease:       *in.LeaseData,
			Raw:         in.Raw,
			Status:      model.LeaseStatusProcessed,
			ProcessedAt: s.now(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
		return nil
	})
	if err != nil {
		logger.WithContext(ctx).Error("intake.save.failed", "project_id", in.ProjectID, "error", err)
		return nil, err
	}

	logger.WithContext(ctx).Info("intake.save.ok", "lease_id", stored.ID, "project_id", stored.ProjectID)
	return &SaveResult{LeaseID: stored.ID, Message: saveMessage}, nil
}

func (s *intakeService) Run(ctx context.Context, in UploadInput, obs pipeline.Observer) *pipeline.Document {
	doc := pipeline.NewDocument(in.File.FileName, in.File.Size, in.File.ContentType, obs)
	if err := doc.Advance(pipeline.StatusUploading, pipeline.ProgressUploadStarted); err != nil {
		return doc
	}

	// Reject bad files before a new project is created for them.
	file, err := s.validateFile(in.File)
	if err != nil {
		s.metrics.Step(metrics.StepUpload, err, 0)
		s.fail(ctx, doc, err)
		return doc
	}
	project, err := s.resolveProject(ctx, in.Project)
	if err != nil {
		s.fail(ctx, doc, err)
		return doc
	}
	s.runDocument(ctx, doc, file, project.ID)
	return doc
}

func (s *intakeService) RunBatch(ctx context.Context, target ProjectTarget, files []FileInput, obs pipeline.Observer) []*pipeline.Document {
	docs := make([]*pipeline.Document, len(files))
	valid := make([]FileInput, len(files))
	accepted := 0
	for i, f := range files {
		docs[i] = pipeline.NewDocument(f.FileName, f.Size, f.ContentType, obs)
		if err := docs[i].Advance(pipeline.StatusUploading, pipeline.ProgressUploadStarted); err != nil {
			continue
		}
		// Rejected files never reach project creation.
		file, err := s.validateFile(f)
		if err != nil {
			s.metrics.Step(metrics.StepUpload, err, 0)
			s.fail(ctx, docs[i], err)
			continue
		}
		valid[i] = file
		accepted++
	}
	if accepted == 0 {
		return docs
	}

	project, err := s.resolveProject(ctx, target)
	if err != nil {
		for _, d := range docs {
			s.fail(ctx, d, err)
		}
		return docs
	}

	logger.WithContext(ctx).Info("intake.batch.start", "project_id", project.ID, "files", len(files), "accepted", accepted)

	var wg sync.WaitGroup
	for i := range files {
		if docs[i].Status != pipeline.StatusUploading {
			continue
		}
		wg.Add(1)
		go func(d *pipeline.Document, f FileInput) {
			defer wg.Done()
			s.runDocument(ctx, d, f, project.ID)
		}(docs[i], valid[i])
	}
	wg.Wait()
	return docs
}

// runDocument takes an uploading document through the remaining steps.
func (s *intakeService) runDocument(ctx context.Context, doc *pipeline.Document, f FileInput, projectID string) {
	ctx, span := s.tracer.Start(ctx, "intake.document",
		trace.WithAttributes(
			attribute.String("document.id", doc.ID),
			attribute.String("document.file_name", doc.FileName),
			attribute.String("project.id", projectID),
		))
	defer span.End()

	doc.ProjectID = projectID

	var up *UploadResult
	err := s.step(ctx, metrics.StepUpload, func(ctx context.Context) error {
		file, err := s.validateFile(f)
		if err != nil {
			return err
		}
		up, err = s.put(ctx, file, projectID)
		return err
	})
	if err != nil {
		s.fail(ctx, doc, err)
		return
	}
	doc.FileURL = up.FileURL
	if err := doc.Advance(pipeline.StatusUploading, pipeline.ProgressUploadSent); err != nil {
		return
	}

	if err := doc.Advance(pipeline.StatusProcessing, pipeline.ProgressExtracting); err != nil {
		return
	}
	processed, err := s.Process(ctx, ProcessInput{FileURL: up.FileURL, FileName: up.FileName, ProjectID: projectID})
	if err != nil {
		s.fail(ctx, doc, err)
		return
	}

	if err := doc.Advance(pipeline.StatusProcessing, pipeline.ProgressSaving); err != nil {
		return
	}
	saved, err := s.Save(ctx, SaveInput{
		LeaseData: processed.LeaseData,
		Raw:       processed.Raw,
		ProjectID: projectID,
		FileName:  up.FileName,
		FileURL:   up.FileURL,
	})
	if err != nil {
		s.fail(ctx, doc, err)
		return
	}

	if err := doc.Complete(saved.LeaseID, processed.LeaseData); err != nil {
		return
	}
	s.metrics.Document(string(pipeline.StatusCompleted))
	logger.WithContext(ctx).Info("intake.document.completed",
		"document_id", doc.ID,
		"lease_id", saved.LeaseID,
		"project_id", projectID,
	)
}

func (s *intakeService) fail(ctx context.Context, doc *pipeline.Document, err error) {
	msg := Message(err)
	if doc.Fail(msg) != nil {
		return
	}
	s.metrics.Document(string(pipeline.StatusError))
	logger.WithContext(ctx).Warn("intake.document.failed",
		"document_id", doc.ID,
		"file_name", doc.FileName,
		"error", err,
	)
}
