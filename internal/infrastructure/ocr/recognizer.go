package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

// Provider is one concrete acquisition backend behind the registry.
type Provider interface {
	Recognize(ctx context.Context, doc *domain.Document, data io.Reader) (*ports.RecognizedText, error)
}

// Registry routes a resolved acquisition method to its provider. Plain
// text uploads bypass every provider: the bytes already are the text.
type Registry struct {
	providers map[domain.OCRMethod]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: map[domain.OCRMethod]Provider{}}
}

func (r *Registry) Register(method domain.OCRMethod, provider Provider) {
	r.providers[method] = provider
}

func (r *Registry) Recognize(ctx context.Context, method domain.OCRMethod, doc *domain.Document, data io.Reader) (*ports.RecognizedText, error) {
	if isPlainText(doc.MimeType) {
		return readPlainText(doc, data)
	}

	provider, ok := r.providers[method]
	if !ok {
		return nil, domain.WrapError(domain.ErrUnsupportedMethod, "recognize text", fmt.Errorf("no provider for %q", method))
	}
	recognized, err := provider.Recognize(ctx, doc, data)
	if err != nil {
		return nil, fmt.Errorf("%s recognize: %w", method, err)
	}
	return recognized, nil
}

func isPlainText(mimeType string) bool {
	switch mimeType {
	case "text/plain", "text/plain; charset=utf-8":
		return true
	}
	return false
}

func readPlainText(doc *domain.Document, data io.Reader) (*ports.RecognizedText, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read text document: %w", err)
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read text document", errors.New("empty file: "+doc.Filename))
	}
	return &ports.RecognizedText{
		Text: string(raw),
		Acquisition: domain.Acquisition{
			Provider:   "direct",
			Confidence: 1.0,
		},
	}, nil
}
