package ai

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/tlk-hr/aptitude-screener/internal/profile"
	"github.com/tlk-hr/aptitude-screener/internal/util"
	"go.uber.org/zap"
)

//go:embed extract_prompt.md
var extractPromptTemplate string

const (
	// maxTextSnippet caps the CV text forwarded to the extraction
	// capability.
	maxTextSnippet = 16000

	defaultMaxLogLength = 200
)

// Extractor turns raw CV text into a canonical ExtractedProfile via the
// generative extraction capability, validating and repairing whatever comes
// back. It never fails: any capability or parse error degrades to the
// canonical empty profile.
type Extractor struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator Generator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type extractPayload struct {
	Text    string   `json:"text"`
	Reading ReadMeta `json:"reading"`
}

// Extract invokes the extraction capability on the given text and coerces
// its response into the canonical profile shape.
func (e *Extractor) Extract(ctx context.Context, text string, meta ReadMeta) profile.ExtractedProfile {
	if strings.TrimSpace(text) == "" || e.generator == nil {
		return profile.DefaultProfile()
	}

	payload, err := json.Marshal(extractPayload{
		Text:    truncateRunes(text, maxTextSnippet),
		Reading: meta,
	})
	if err != nil {
		e.logger.Warn("marshal extraction payload", zap.Error(err))
		return profile.DefaultProfile()
	}

	prompt := strings.ReplaceAll(extractPromptTemplate, "{{INPUT_JSON}}", string(payload))

	e.logger.Debug("extraction request",
		zap.String("model", e.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		e.logger.Warn("extraction capability failed, using empty profile", zap.Error(err))
		return profile.DefaultProfile()
	}

	e.logger.Debug("extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	data, ok := DecodeObject(raw)
	if !ok {
		e.logger.Warn("extraction response is not parseable JSON, using empty profile",
			zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
		)
		return profile.DefaultProfile()
	}

	if err := validateExtraction(data); err != nil {
		// advisory only; coercion below repairs field by field
		e.logger.Warn("extraction response deviates from schema", zap.Error(err))
	}

	return profile.CoerceProfile(data)
}

// truncateRunes cuts s to at most limit runes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
