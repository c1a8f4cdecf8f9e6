package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
	"github.com/tavalos/papeleo/internal/infrastructure/resilience"
)

const defaultVisionBaseURL = "https://vision.googleapis.com"

// GoogleVision is the paid acquisition provider backed by the Cloud
// Vision images:annotate endpoint with DOCUMENT_TEXT_DETECTION.
type GoogleVision struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func NewGoogleVision(baseURL, apiKey string, executor *resilience.Executor) *GoogleVision {
	if baseURL == "" {
		baseURL = defaultVisionBaseURL
	}
	return &GoogleVision{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (g *GoogleVision) Recognize(ctx context.Context, doc *domain.Document, data io.Reader) (*ports.RecognizedText, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read document bytes: %w", err)
	}

	var request visionRequest
	annotate := visionAnnotateRequest{
		Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
	}
	annotate.Image.Content = base64.StdEncoding.EncodeToString(raw)
	request.Requests = []visionAnnotateRequest{annotate}

	var response visionResponse
	call := func(callCtx context.Context) error {
		return g.postJSON(callCtx, "/v1/images:annotate", request, &response, "annotate")
	}

	if g.executor != nil {
		err = g.executor.Execute(ctx, "vision.annotate", call, classifyVisionError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded("vision annotate", err)
	}

	if len(response.Responses) == 0 {
		return nil, fmt.Errorf("vision annotate: empty response")
	}
	first := response.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("vision annotate: remote error %d: %s", first.Error.Code, first.Error.Message)
	}

	return &ports.RecognizedText{
		Text: first.FullTextAnnotation.Text,
		Acquisition: domain.Acquisition{
			Provider:   string(domain.OCRGoogleVision),
			Confidence: domain.OCRGoogleVision.NominalConfidence(),
			Cost:       domain.OCRGoogleVision.CostPerPage(),
		},
	}, nil
}

func (g *GoogleVision) postJSON(ctx context.Context, path string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	url := g.baseURL + path
	if g.apiKey != "" {
		url += "?key=" + g.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vision %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
