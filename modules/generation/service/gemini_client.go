package service

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
	"unicode/utf8"

	"outings-api/core/config"
	"outings-api/core/logger"
	"outings-api/modules/generation/entity"
)

const maxResponseSize = 1 << 20

var (
	ErrMissingAPIKey     = errors.New("generation api key is not configured")
	ErrEmptyResponse     = errors.New("generator returned no content")
	ErrIncompleteDetails = errors.New("generator reply lacks title or description")
)

// Generator turns a free-text outing idea into a French title and description.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*entity.ActivityDetails, error)
}

// GeminiClient calls the generateContent REST endpoint with a response schema so the
// model answers with {title, description} JSON.
type GeminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

type ClientOption func(*GeminiClient)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient = hc
	}
}

func NewGeminiClient(cfg config.GenerationConfig, opts ...ClientOption) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &GeminiClient{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Properties  map[string]geminiSchema `json:"properties,omitempty"`
	Required    []string                `json:"required,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string       `json:"responseMimeType"`
	ResponseSchema   geminiSchema `json:"responseSchema"`
	Temperature      float64      `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

var activityDetailsSchema = geminiSchema{
	Type: "OBJECT",
	Properties: map[string]geminiSchema{
		"title": {
			Type:        "STRING",
			Description: "A catchy and appealing title for the event, in French.",
		},
		"description": {
			Type:        "STRING",
			Description: "A detailed and engaging description for the event, in French. It should be inviting and provide a good overview of what to expect.",
		},
	},
	Required: []string{"title", "description"},
}

// BuildPrompt wraps the organizer's idea in the French instruction sent to the model.
func BuildPrompt(idea string) string {
	return fmt.Sprintf("À partir de l'idée de sortie suivante : \"%s\", génère un titre accrocheur et une description détaillée et attrayante en français. La description doit être chaleureuse et donner un bon aperçu de ce à quoi s'attendre.", idea)
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (*entity.ActivityDetails, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildPrompt(prompt)}},
		}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   activityDetailsSchema,
			Temperature:      c.temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	logger.Debug("GeminiClient:Generate:Request", "model", c.model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return ParseActivityDetails(text.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
