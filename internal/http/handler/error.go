package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"leaseintake/internal/http/middleware"
	"leaseintake/internal/logger"
	"leaseintake/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// serviceErrors maps service sentinels to transport status and code.
// The message is always the sentinel's own text.
var serviceErrors = []errorMapping{
	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED"},
	{service.ErrNoFile, fiber.StatusBadRequest, "FILE_REQUIRED"},
	{service.ErrInvalidFileType, fiber.StatusBadRequest, "INVALID_FILE_TYPE"},
	{service.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{service.ErrProjectRequired, fiber.StatusBadRequest, "PROJECT_REQUIRED"},
	{service.ErrNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED"},
	{service.ErrNoFileURL, fiber.StatusBadRequest, "FILE_URL_REQUIRED"},
	{service.ErrMissingData, fiber.StatusBadRequest, "MISSING_DATA"},
	{service.ErrProjectNotFound, fiber.StatusNotFound, "PROJECT_NOT_FOUND"},
	{service.ErrLeaseNotFound, fiber.StatusNotFound, "LEASE_NOT_FOUND"},
	{service.ErrUploadFailed, fiber.StatusInternalServerError, "UPLOAD_FAILED"},
	{service.ErrExtractionFailed, fiber.StatusInternalServerError, "EXTRACTION_FAILED"},
	{service.ErrAnalysisFailed, fiber.StatusInternalServerError, "ANALYSIS_FAILED"},
	{service.ErrInvalidAnalysis, fiber.StatusInternalServerError, "INVALID_ANALYSIS"},
	{service.ErrProcessingFailed, fiber.StatusInternalServerError, "PROCESSING_FAILED"},
	{service.ErrSaveFailed, fiber.StatusInternalServerError, "SAVE_FAILED"},
}

// writeServiceError translates a service error; unknown errors become a generic 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			if m.status >= fiber.StatusInternalServerError {
				logger.WithContext(c.UserContext()).Error("http.request.failed",
					"path", c.Path(), "code", m.code, "error", err)
			}
			return writeError(c, m.status, m.code, m.err.Error())
		}
	}
	logger.WithContext(c.UserContext()).Error("http.request.failed", "path", c.Path(), "error", err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", service.ErrFileTooLarge.Error())
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
