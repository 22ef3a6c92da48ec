package service

import "errors"

// Sentinel errors carry the message shown to users. Callers wrap them with %w
// and recover the user-facing text with Message.
var (
	ErrIDRequired = errors.New("id is required")

	ErrNoFile          = errors.New("No file provided")
	ErrInvalidFileType = errors.New("Invalid file type")
	ErrFileTooLarge    = errors.New("File exceeds the 50 MB limit")
	ErrProjectRequired = errors.New("Project id or new project name is required")
	ErrUploadFailed    = errors.New("Upload failed")

	ErrNoFileURL        = errors.New("No file URL provided")
	ErrExtractionFailed = errors.New("Failed to extract text from document")
	ErrAnalysisFailed   = errors.New("Failed to analyze document")
	ErrInvalidAnalysis  = errors.New("Invalid analysis result format")
	ErrProcessingFailed = errors.New("Document processing failed")

	ErrMissingData = errors.New("Missing required data")
	ErrSaveFailed  = errors.New("Failed to save lease data")

	ErrNameRequired    = errors.New("Project name is required")
	ErrProjectNotFound = errors.New("Project not found")
	ErrLeaseNotFound   = errors.New("Lease not found")
)

var userFacing = []error{
	ErrIDRequired,
	ErrNoFile, ErrInvalidFileType, ErrFileTooLarge, ErrProjectRequired, ErrUploadFailed,
	ErrNoFileURL, ErrExtractionFailed, ErrAnalysisFailed, ErrInvalidAnalysis, ErrProcessingFailed,
	ErrMissingData, ErrSaveFailed,
	ErrNameRequired, ErrProjectNotFound, ErrLeaseNotFound,
}

// Message returns the user-facing text for err: the message of the first
// sentinel it wraps, or the generic processing failure.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, s := range userFacing {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return ErrProcessingFailed.Error()
}
