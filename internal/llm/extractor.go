package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"leaseintake/internal/config"
	"leaseintake/internal/logger"
	leasemodel "leaseintake/internal/model"
)

var (
	ErrModelCall       = errors.New("language model call failed")
	ErrEmptyAnalysis   = errors.New("language model returned no content")
	ErrMalformedResult = errors.New("malformed analysis result")
)

// ChatModel is the single-call seam to the hosted language model.
// The eino OpenAI chat model satisfies it; tests substitute a deterministic stub.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LeaseExtractor turns extracted document text into a LeaseRecord.
type LeaseExtractor interface {
	// Extract returns the decoded record together with the model's raw JSON.
	Extract(ctx context.Context, text string) (*leasemodel.LeaseRecord, json.RawMessage, error)
}

// Options pins the sampling parameters of every extraction request.
type Options struct {
	Temperature   float32
	MaxTokens     int
	MaxInputChars int
}

// DefaultOptions are the values the extraction contract is written against.
func DefaultOptions() Options {
	return Options{Temperature: 0.1, MaxTokens: 2000, MaxInputChars: 15000}
}

// Client implements LeaseExtractor over a ChatModel.
type Client struct {
	model ChatModel
	opts  Options
}

// NewClient wraps a chat model. Zero-valued options fall back to DefaultOptions.
func NewClient(m ChatModel, opts Options) *Client {
	def := DefaultOptions()
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = def.MaxTokens
	}
	if opts.MaxInputChars <= 0 {
		opts.MaxInputChars = def.MaxInputChars
	}
	if opts.Temperature < 0 {
		opts.Temperature = def.Temperature
	}
	return &Client{model: m, opts: opts}
}

// NewOpenAIChatModel builds the production chat model from config.
func NewOpenAIChatModel(ctx context.Context, cfg config.LLMConfig) (ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}
	temp := cfg.Temperature
	maxTokens := cfg.MaxTokens
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temp,
		MaxTokens:   &maxTokens,
		Timeout:     cfg.Timeout,
	})
}

// Extract implements LeaseExtractor. Malformed output is never repaired or retried.
func (c *Client) Extract(ctx context.Context, text string) (*leasemodel.LeaseRecord, json.RawMessage, error) {
	rid := uuid.NewString()
	start := time.Now()
	log := logger.WithContext(ctx)

	input := Truncate(text, c.opts.MaxInputChars)
	log.Info("llm.extract.start",
		"llm_req_id", rid,
		"temp", c.opts.Temperature,
		"max_tokens", c.opts.MaxTokens,
		"text_len", len(text),
		"truncated", len(input) < len(text),
	)

	resp, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(buildUserPrompt(input)),
	},
		model.WithTemperature(c.opts.Temperature),
		model.WithMaxTokens(c.opts.MaxTokens),
	)
	if err != nil {
		log.Error("llm.extract.call_error", "llm_req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		log.Error("llm.extract.empty", "llm_req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, ErrEmptyAnalysis
	}

	rec, raw, err := ParseRecord(resp.Content)
	if err != nil {
		log.Error("llm.extract.parse_error", "llm_req_id", rid, "error", err,
			"content_len", len(resp.Content),
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, err
	}

	log.Info("llm.extract.ok",
		"llm_req_id", rid,
		"tenant", rec.Tenant.CompanyName,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, raw, nil
}

// ParseRecord decodes model output that must be a single JSON object shaped like a LeaseRecord.
// Missing groups and keys are allowed and decode as empty strings.
func ParseRecord(content string) (*leasemodel.LeaseRecord, json.RawMessage, error) {
	raw := bytes.TrimSpace([]byte(content))
	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return nil, nil, fmt.Errorf("%w: not a JSON object", ErrMalformedResult)
	}
	var rec leasemodel.LeaseRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	return &rec, json.RawMessage(raw), nil
}

// Truncate limits s to max characters (runes), never splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
