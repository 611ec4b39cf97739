package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tlk-hr/aptitude-screener/internal/util"
	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "llama-3.3-70b-versatile"
	defaultTemperature = 0.05
	requestTimeout     = 90 * time.Second
)

// Generator speaks the OpenAI-compatible chat/completions dialect exposed by
// the Groq API. One instance serves one model.
type Generator struct {
	httpClient  *http.Client
	logger      *zap.Logger
	apiKey      string
	baseURL     string
	modelName   string
	temperature float64
}

// Config holds the Groq connection settings. Zero values fall back to the
// package defaults.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

func NewGenerator(cfg Config, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("groq api key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &Generator{
		httpClient:  &http.Client{Timeout: requestTimeout},
		logger:      logger,
		apiKey:      apiKey,
		baseURL:     baseURL,
		modelName:   model,
		temperature: temperature,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// first choice's content.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.httpClient == nil {
		return "", errors.New("groq generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	body := map[string]any{
		"model":       g.modelName,
		"temperature": g.temperature,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}

	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	reqID := uuid.New().String()
	start := time.Now()
	endpoint := g.baseURL + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	g.logger.Debug("groq request",
		zap.String("req_id", reqID),
		zap.String("url", endpoint),
		zap.Int("content_length", len(bs)),
	)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	g.logger.Debug("groq response",
		zap.String("req_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(raw)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("groq api status %d: %s", resp.StatusCode, util.TruncateForLog(string(raw), 300))
	}

	content := strings.TrimSpace(gjson.GetBytes(raw, "choices.0.message.content").String())
	if content == "" {
		return "", errors.New("groq api returned empty response")
	}

	return content, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
