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

//go:embed score_prompt.md
var scorePromptTemplate string

// Scorer produces per-role fit scores from an enriched profile via the
// generative scoring capability. The scorer sees the audited profile only,
// never the raw document text, so every claim it can rely on is already
// evidence-backed. Like the extractor it never fails upward.
type Scorer struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator Generator, logger *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Score invokes the scoring capability on the enriched profile and coerces
// its response into a canonical ScoreSet.
func (s *Scorer) Score(ctx context.Context, p profile.ExtractedProfile) profile.ScoreSet {
	if s.generator == nil {
		return profile.DefaultScoreSet()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("marshal profile payload", zap.Error(err))
		return profile.DefaultScoreSet()
	}

	prompt := strings.ReplaceAll(scorePromptTemplate, "{{INPUT_JSON}}", string(payload))

	s.logger.Debug("scoring request",
		zap.String("model", s.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("scoring capability failed, using zero scores", zap.Error(err))
		return profile.DefaultScoreSet()
	}

	s.logger.Debug("scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	data, ok := DecodeObject(raw)
	if !ok {
		s.logger.Warn("scoring response is not parseable JSON, using zero scores",
			zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
		)
		return profile.DefaultScoreSet()
	}

	if err := validateScoring(data); err != nil {
		s.logger.Warn("scoring response deviates from schema", zap.Error(err))
	}

	set, ok := profile.CoerceScoreSet(data)
	if !ok {
		s.logger.Warn("scoring response has no scores object, using zero scores")
		return set
	}

	// The scorer may only quote evidence the profile already carries; any
	// newly invented excerpt is dropped.
	allowed := p.EvidenceStrings()
	set.Inbound.Evidence = filterEvidence(set.Inbound.Evidence, allowed)
	set.Outbound.Evidence = filterEvidence(set.Outbound.Evidence, allowed)
	set.Appointment.Evidence = filterEvidence(set.Appointment.Evidence, allowed)

	return set
}

// filterEvidence keeps the candidates that appear verbatim inside one of the
// allowed excerpts.
func filterEvidence(candidates, allowed []string) []string {
	kept := make([]string, 0, len(candidates))
	for _, c := range candidates {
		for _, a := range allowed {
			if strings.Contains(a, c) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}
