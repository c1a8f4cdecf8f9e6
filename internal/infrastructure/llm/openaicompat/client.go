package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/infrastructure/resilience"
)

// Client talks to any OpenAI-compatible chat completions endpoint. The
// extraction prompt asks for strict JSON and the response is checked
// against the per-type schema before it reaches the engine.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey, model string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractFields asks the model for the field set of one document type and
// returns the parsed mapping. Output that is not a JSON object, or that
// fails the per-type schema, is an error so the caller's fallback runs.
func (c *Client) ExtractFields(ctx context.Context, docType domain.DocumentType, text string) (map[string]any, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildExtractionPrompt(docType, text)},
		},
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	var response chatResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/chat/completions", request, &response, "extract")
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "llm.extract", call, classifyLLMError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded("llm extract", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("llm extract: empty choices")
	}

	content := extractJSONObject(response.Choices[0].Message.Content)
	var values map[string]any
	if err := json.Unmarshal([]byte(content), &values); err != nil {
		return nil, fmt.Errorf("parse extraction json: %w", err)
	}
	if err := validateFields(docType, values); err != nil {
		return nil, fmt.Errorf("validate extraction json: %w", err)
	}
	return values, nil
}

// extractJSONObject tolerates models that wrap the object in prose or a
// markdown fence.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
