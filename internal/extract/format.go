package extract

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is the document family used to pick an extraction strategy.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatDOC     Format = "doc"
	FormatImage   Format = "image"
	FormatUnknown Format = "unknown"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// DetectFormat infers the format from the file extension, falling back to content sniffing.
func DetectFormat(fileName string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	case ".jpg", ".jpeg", ".png":
		return FormatImage
	}
	if len(head) == 0 {
		return FormatUnknown
	}
	return FormatFromMIME(mimetype.Detect(head).String())
}

// FormatFromMIME maps a MIME type (parameters allowed) to a Format.
func FormatFromMIME(m string) Format {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	switch strings.TrimSpace(strings.ToLower(m)) {
	case MimePDF:
		return FormatPDF
	case MimeDOCX:
		return FormatDOCX
	case MimeDOC:
		return FormatDOC
	case MimeJPEG, MimePNG:
		return FormatImage
	default:
		return FormatUnknown
	}
}

// SniffMIME returns the detected MIME type of the content without parameters.
func SniffMIME(head []byte) string {
	m := mimetype.Detect(head).String()
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return m
}
