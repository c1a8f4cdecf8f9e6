package usecase

import (
	"context"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/extraction"
)

// AnalyzeTextUseCase runs the extraction engine synchronously over text
// the caller already has, skipping storage and OCR entirely.
type AnalyzeTextUseCase struct {
	engine *extraction.Engine
}

func NewAnalyzeTextUseCase(engine *extraction.Engine) *AnalyzeTextUseCase {
	return &AnalyzeTextUseCase{engine: engine}
}

// Analyze treats the input as perfectly acquired: full confidence, no
// provider cost, so the document score reflects extraction alone.
func (uc *AnalyzeTextUseCase) Analyze(
	ctx context.Context,
	text string,
	declaredType domain.DocumentType,
	method domain.ExtractionMethod,
) (*domain.ExtractionResult, error) {
	return uc.engine.Extract(ctx, domain.ExtractionRequest{
		Text:         text,
		DeclaredType: declaredType,
		Method:       method,
		Acquisition: domain.Acquisition{
			Provider:   "direct",
			Confidence: 1.0,
		},
	})
}
