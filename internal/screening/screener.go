package screening

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/tlk-hr/aptitude-screener/internal/ai"
	"github.com/tlk-hr/aptitude-screener/internal/document"
	"github.com/tlk-hr/aptitude-screener/internal/enrich"
	"github.com/tlk-hr/aptitude-screener/internal/extract"
	"github.com/tlk-hr/aptitude-screener/internal/profile"
	"go.uber.org/zap"
)

// Confidence blend weights: reading method vs extraction self-assessment.
const (
	readWeight       = 0.55
	extractionWeight = 0.45
)

type documentReader interface {
	Extract(ctx context.Context, path string) document.ReadResult
}

type profileExtractor interface {
	Extract(ctx context.Context, text string, meta ai.ReadMeta) profile.ExtractedProfile
}

type scoreProducer interface {
	Score(ctx context.Context, p profile.ExtractedProfile) profile.ScoreSet
}

// Options configures a Screener.
type Options struct {
	// Threshold is the blended-confidence acceptance gate.
	Threshold float64
	// Contacts drives deterministic phone extraction.
	Contacts extract.Config
	// Rules drives the enrichment signal policy.
	Rules enrich.Rules
}

// Screener runs the fixed per-document pipeline: acquisition, deterministic
// and generative extraction against the same text, enrichment merge,
// scoring over the enriched profile only, and final row assembly. Documents
// are independent; a failure in one never affects the others.
type Screener struct {
	docs      documentReader
	extractor profileExtractor
	scorer    scoreProducer
	opts      Options
	logger    *zap.Logger
}

func New(docs documentReader, extractor profileExtractor, scorer scoreProducer, opts Options, logger *zap.Logger) *Screener {
	return &Screener{
		docs:      docs,
		extractor: extractor,
		scorer:    scorer,
		opts:      opts,
		logger:    logger,
	}
}

// Run screens the given documents sequentially and buckets each into
// accepted rows, the low-confidence list, or the unreadable list. Rows come
// back sorted by best score, highest first.
func (s *Screener) Run(ctx context.Context, paths []string) *Result {
	result := &Result{Threshold: s.opts.Threshold}

	for _, path := range paths {
		name := filepath.Base(path)
		row, unreadable := s.process(ctx, path)

		switch {
		case unreadable != nil:
			result.Unreadable = append(result.Unreadable, *unreadable)
			s.logger.Warn("document unreadable",
				zap.String("file", name),
				zap.String("reason", string(unreadable.Reason)),
			)
		case row.Confidence < s.opts.Threshold:
			result.LowConfidence = append(result.LowConfidence, name)
			s.logger.Info("document below confidence threshold",
				zap.String("file", name),
				zap.Float64("confidence", row.Confidence),
				zap.Float64("threshold", s.opts.Threshold),
			)
		default:
			result.Rows = append(result.Rows, row)
			s.logger.Info("document screened",
				zap.String("file", name),
				zap.String("candidate", row.FullName),
				zap.Int("best_score", row.BestScore),
				zap.String("best_label", row.BestLabel),
				zap.Float64("confidence", row.Confidence),
			)
		}
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].BestScore > result.Rows[j].BestScore
	})

	return result
}

// process runs the pipeline stages for one document. The second return is
// non-nil when acquisition yielded no text at all; such documents never
// enter the extraction pipeline.
func (s *Screener) process(ctx context.Context, path string) (*FinalRow, *UnreadableDocument) {
	name := filepath.Base(path)

	read := s.docs.Extract(ctx, path)
	if read.Empty() {
		return nil, &UnreadableDocument{FileName: name, Reason: read.Reason}
	}

	emailFallback := extract.Email(read.Text)
	phonesFallback := extract.Phones(read.Text, s.opts.Contacts)

	meta := ai.ReadMeta{
		Confidence:   read.Confidence,
		Reason:       string(read.Reason),
		LanguageHint: extract.DetectLanguageHint(read.Text),
	}

	extracted := s.extractor.Extract(ctx, read.Text, meta)
	enriched := enrich.Apply(extracted, read.Text, emailFallback, phonesFallback, s.opts.Rules)

	blended := profile.Clamp01(readWeight*read.Confidence + extractionWeight*enriched.Extraction.Confidence)

	// low confidence is not an error: the document is processed fully and
	// only gated at assembly
	scores := s.scorer.Score(ctx, enriched)

	return assembleRow(name, read, enriched, scores, blended), nil
}
