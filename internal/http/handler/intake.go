package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"sync"

	"github.com/gofiber/fiber/v2"

	"leaseintake/internal/logger"
	"leaseintake/internal/model"
	"leaseintake/internal/pipeline"
	"leaseintake/internal/service"
)

type uploadResponse struct {
	Success bool `json:"success"`
	*service.UploadResult
}

type processResponse struct {
	Success bool `json:"success"`
	*service.ProcessResult
}

type saveRequest struct {
	LeaseData json.RawMessage `json:"leaseData"`
	ProjectID string          `json:"projectId"`
	FileName  string          `json:"fileName"`
	FileURL   string          `json:"fileUrl"`
}

type saveResponse struct {
	Success bool `json:"success"`
	*service.SaveResult
}

type intakeResponse struct {
	Success   bool                 `json:"success"`
	Failed    int                  `json:"failed"`
	Documents []*pipeline.Document `json:"documents"`
	Events    []pipeline.Event     `json:"events"`
}

func projectTargetFromForm(c *fiber.Ctx) service.ProjectTarget {
	return service.ProjectTarget{
		ID:          c.FormValue("projectId"),
		Name:        c.FormValue("projectName"),
		Description: c.FormValue("projectDescription"),
	}
}

func fileInput(fh *multipart.FileHeader, r io.Reader) service.FileInput {
	return service.FileInput{
		Reader:      r,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
}

// UploadFile godoc
// @Summary Upload a lease document
// @Description Stores one file in object storage under an existing or newly created project.
// @Tags intake
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Lease document (PDF, DOC, DOCX, JPEG, PNG)"
// @Param projectId formData string false "Existing project id"
// @Param projectName formData string false "Name of a project to create"
// @Param projectDescription formData string false "Description of the new project"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/upload [post]
func UploadFile(svc service.IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeServiceError(c, service.ErrNoFile)
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Upload(c.UserContext(), service.UploadInput{
			File:    fileInput(fh, f),
			Project: projectTargetFromForm(c),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(uploadResponse{Success: true, UploadResult: res})
	}
}

// ProcessDocument godoc
// @Summary Extract and structure a stored document
// @Tags intake
// @Accept json
// @Produce json
// @Param body body service.ProcessInput true "Stored file reference"
// @Success 200 {object} processResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/process-document [post]
func ProcessDocument(svc service.IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProcessInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Process(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(processResponse{Success: true, ProcessResult: res})
	}
}

// SaveLeaseData godoc
// @Summary Persist an analysed lease
// @Tags intake
// @Accept json
// @Produce json
// @Param body body saveRequest true "Lease data and its project"
// @Success 200 {object} saveResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/save-lease-data [post]
func SaveLeaseData(svc service.IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		in := service.SaveInput{
			ProjectID: req.ProjectID,
			FileName:  req.FileName,
			FileURL:   req.FileURL,
		}
		if len(req.LeaseData) > 0 && string(req.LeaseData) != "null" {
			var rec model.LeaseRecord
			if err := json.Unmarshal(req.LeaseData, &rec); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LEASE_DATA", "leaseData must be a lease object")
			}
			in.LeaseData = &rec
			in.Raw = req.LeaseData
		}

		res, err := svc.Save(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(saveResponse{Success: true, SaveResult: res})
	}
}

// RunIntake godoc
// @Summary Run the full pipeline for one or more files
// @Description Uploads, extracts, analyses and saves every file concurrently. Per-file failures are reported in the document list.
// @Tags intake
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "One or more lease documents"
// @Param projectId formData string false "Existing project id"
// @Param projectName formData string false "Name of a project to create"
// @Param projectDescription formData string false "Description of the new project"
// @Success 200 {object} intakeResponse
// @Failure 400 {object} errorPayload
// @Router /api/intake [post]
func RunIntake(svc service.IntakeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil || len(form.File["file"]) == 0 {
			return writeServiceError(c, service.ErrNoFile)
		}
		headers := form.File["file"]

		files := make([]service.FileInput, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			files = append(files, fileInput(fh, f))
		}

		var (
			mu     sync.Mutex
			events []pipeline.Event
		)
		obs := func(e pipeline.Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}

		// A dropped client connection does not abort documents already in flight.
		ctx := context.WithoutCancel(c.UserContext())
		docs := svc.RunBatch(ctx, projectTargetFromForm(c), files, obs)

		failed := 0
		for _, d := range docs {
			if d.Status == pipeline.StatusError {
				failed++
			}
		}
		logger.WithContext(ctx).Info("http.intake.done", "files", len(docs), "failed", failed)

		mu.Lock()
		defer mu.Unlock()
		return c.JSON(intakeResponse{Success: true, Failed: failed, Documents: docs, Events: events})
	}
}
