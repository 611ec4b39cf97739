package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Extractor acquires text from résumé documents. PDF reading and OCR are
// delegated to external tools (pdftotext, pdftoppm, tesseract); DOCX and
// plain text are read directly.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg.withDefaults(),
		runner: execRunner{logger: logger},
		logger: logger,
	}
}

// NewWithRunner is used by tests to substitute the external commands.
func NewWithRunner(cfg Config, runner Runner, logger *zap.Logger) *Extractor {
	return &Extractor{cfg: cfg.withDefaults(), runner: runner, logger: logger}
}

// SupportedExtensions lists the file types the extractor will attempt.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".doc", ".odt", ".rtf"}

// Supported reports whether the file's extension is one the extractor
// handles.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// bestEffortMinLen is the floor under which a raw byte decode of a binary
// word-processor format is considered garbage rather than text.
const bestEffortMinLen = 200

// Extract reads the document and returns its text with a reading-method
// confidence. It never returns an error: failures are encoded in the result
// reason with confidence 0.
func (e *Extractor) Extract(ctx context.Context, path string) ReadResult {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return e.extractPDF(ctx, path)
	case ".docx":
		return e.extractDOCX(path)
	case ".txt":
		return e.extractPlain(path, false)
	case ".doc", ".odt", ".rtf":
		// best-effort byte decode; these formats are binary containers
		return e.extractPlain(path, true)
	default:
		return ReadResult{Reason: ReasonUnsupported}
	}
}

func (e *Extractor) extractPDF(ctx context.Context, path string) ReadResult {
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	text := strings.TrimSpace(string(out))
	if err == nil && text != "" {
		return ReadResult{Text: text, Confidence: 1.0, Reason: ReasonNativeText}
	}

	if err != nil {
		e.logger.Debug("pdftotext failed, falling back to OCR",
			zap.String("file", filepath.Base(path)),
			zap.Error(err),
		)
	}
	return e.ocrPDF(ctx, path)
}

func (e *Extractor) ocrPDF(ctx context.Context, path string) ReadResult {
	tmpDir, err := os.MkdirTemp("", "aptitude-ocr-*")
	if err != nil {
		return ReadResult{Reason: ReasonError}
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("removing ocr temp dir", zap.Error(rmErr))
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	if _, _, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix); err != nil {
		return ReadResult{Reason: ReasonError}
	}

	// pdftoppm names pages page-1.png, page-2.png, ...
	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return ReadResult{Reason: ReasonOCRFailed}
	}

	var texts []string
	nonEmpty := 0
	for _, img := range pages {
		out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout")
		if err != nil {
			continue
		}
		if txt := strings.TrimSpace(string(out)); txt != "" {
			nonEmpty++
			texts = append(texts, txt)
		}
	}

	if len(texts) == 0 {
		return ReadResult{Reason: ReasonOCRFailed}
	}

	return ReadResult{
		Text:       strings.Join(texts, "\n"),
		Confidence: OCRConfidence(nonEmpty),
		Reason:     ReasonOCR,
	}
}

func (e *Extractor) extractDOCX(path string) ReadResult {
	text, err := readDOCX(path)
	if err != nil {
		e.logger.Debug("docx read failed", zap.String("file", filepath.Base(path)), zap.Error(err))
		return ReadResult{Reason: ReasonError}
	}
	if text == "" {
		return ReadResult{Reason: ReasonUnsupported}
	}
	return ReadResult{Text: text, Confidence: 1.0, Reason: ReasonNativeText}
}

func (e *Extractor) extractPlain(path string, bestEffort bool) ReadResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ReadResult{Reason: ReasonError}
	}

	text := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
	if bestEffort && len(text) < bestEffortMinLen {
		return ReadResult{Reason: ReasonUnsupported}
	}
	if text == "" {
		return ReadResult{Reason: ReasonUnsupported}
	}
	return ReadResult{Text: text, Confidence: 1.0, Reason: ReasonNativeText}
}
