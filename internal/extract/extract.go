package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"leaseintake/internal/config"
	"leaseintake/internal/logger"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyText         = errors.New("no text found in document")
	ErrTooLarge          = errors.New("document exceeds fetch limit")
)

// TextExtractor turns the document stored at fileURL into plain text.
// fileName is only used to infer the document format.
type TextExtractor interface {
	Extract(ctx context.Context, fileURL, fileName string) (string, error)
}

// DocumentExtractor fetches a document over HTTP and extracts text by format:
// PDF through the eino PDF parser, DOCX from its OOXML body, images through tesseract.
type DocumentExtractor struct {
	client   *http.Client
	pdf      parser.Parser
	ocr      OCR
	maxBytes int64
}

// Option customises a DocumentExtractor.
type Option func(*DocumentExtractor)

// WithHTTPClient replaces the fetch client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *DocumentExtractor) { e.client = c }
}

// WithPDFParser replaces the PDF parser.
func WithPDFParser(p parser.Parser) Option {
	return func(e *DocumentExtractor) { e.pdf = p }
}

// WithOCR replaces the image OCR engine.
func WithOCR(o OCR) Option {
	return func(e *DocumentExtractor) { e.ocr = o }
}

// NewDocumentExtractor builds the production extractor from config.
func NewDocumentExtractor(ctx context.Context, cfg config.ExtractConfig, opts ...Option) (*DocumentExtractor, error) {
	e := &DocumentExtractor{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.FetchTimeout,
		},
		ocr:      NewTesseract(cfg.TesseractPath, cfg.TesseractLang, nil),
		maxBytes: cfg.MaxFetchBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pdf == nil {
		p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
		if err != nil {
			return nil, fmt.Errorf("create pdf parser: %w", err)
		}
		e.pdf = p
	}
	return e, nil
}

// Extract implements TextExtractor.
func (e *DocumentExtractor) Extract(ctx context.Context, fileURL, fileName string) (string, error) {
	start := time.Now()
	log := logger.WithContext(ctx)

	data, err := e.fetch(ctx, fileURL)
	if err != nil {
		log.Error("extract.fetch_error", "file_name", fileName, "error", err)
		return "", err
	}

	format := DetectFormat(fileName, data)
	var text string
	switch format {
	case FormatPDF:
		text, err = e.extractPDF(ctx, data, fileName)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatImage:
		text, err = e.ocr.Recognize(ctx, data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		log.Error("extract.parse_error", "file_name", fileName, "format", format, "error", err)
		return "", err
	}

	text = Normalize(text)
	if text == "" {
		return "", ErrEmptyText
	}

	log.Info("extract.ok",
		"file_name", fileName,
		"format", format,
		"bytes", len(data),
		"text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (e *DocumentExtractor) fetch(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if e.maxBytes > 0 {
		body = io.LimitReader(resp.Body, e.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (e *DocumentExtractor) extractPDF(ctx context.Context, data []byte, fileName string) (string, error) {
	docs, err := e.pdf.Parse(ctx, bytes.NewReader(data), parser.WithURI(fileName))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	var b bytes.Buffer
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.Content)
	}
	return b.String(), nil
}
