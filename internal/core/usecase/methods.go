package usecase

import (
	"context"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/extraction"
)

// MethodCatalogUseCase reports the acquisition and extraction families
// with their nominal confidence, per-page cost and current availability.
type MethodCatalogUseCase struct {
	sel *extraction.Selector
}

func NewMethodCatalogUseCase(sel *extraction.Selector) *MethodCatalogUseCase {
	return &MethodCatalogUseCase{sel: sel}
}

func (uc *MethodCatalogUseCase) Methods(_ context.Context) (*domain.MethodCatalog, error) {
	catalog := &domain.MethodCatalog{}

	defaultOCR := uc.sel.ResolveOCR(domain.OCRAuto)
	for _, m := range domain.OCRMethods() {
		catalog.OCR = append(catalog.OCR, domain.MethodInfo{
			Name:        string(m),
			Confidence:  m.NominalConfidence(),
			CostPerPage: m.CostPerPage(),
			Available:   uc.sel.OCRAvailable(m),
			Default:     m == defaultOCR,
		})
	}

	// The auto default depends on text length; the short-text resolution
	// is reported as the default family.
	defaultExtraction := uc.sel.ResolveExtraction(domain.ExtractionAuto, 0)
	for _, m := range domain.ExtractionMethods() {
		catalog.Extraction = append(catalog.Extraction, domain.MethodInfo{
			Name:       string(m),
			Confidence: m.NominalConfidence(),
			Available:  uc.sel.MethodAvailable(m),
			Default:    m == defaultExtraction,
		})
	}

	return catalog, nil
}
