package ai

import "context"

// Generator is the narrow contract for an external generative-text
// capability: prompt in, raw text out. Implementations are treated as
// unreliable remote services; callers never assume well-formed output.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ReadMeta describes how the source text of a document was acquired. It is
// forwarded to the extraction capability so it can calibrate its own
// confidence.
type ReadMeta struct {
	Confidence   float64 `json:"method_confidence"`
	Reason       string  `json:"method_reason"`
	LanguageHint string  `json:"language_hint"`
}
