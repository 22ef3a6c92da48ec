package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// OCR recognises text in an image.
type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		slog.Error("exec failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

// Tesseract runs the tesseract CLI, feeding the image on stdin.
type Tesseract struct {
	path   string
	lang   string
	runner Runner
}

// NewTesseract returns a tesseract OCR engine; a nil runner executes the real binary.
func NewTesseract(path, lang string, runner Runner) *Tesseract {
	if path == "" {
		path = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	if runner == nil {
		runner = execRunner{}
	}
	return &Tesseract{path: path, lang: lang, runner: runner}
}

// Recognize implements OCR.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	out, _, err := t.runner.Run(ctx, bytes.NewReader(image), t.path, "stdin", "stdout", "-l", t.lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
