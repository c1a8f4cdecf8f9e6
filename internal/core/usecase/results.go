package usecase

import (
	"context"
	"fmt"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// QueryResultsUseCase is the read model over documents and their
// extraction results.
type QueryResultsUseCase struct {
	repo    ports.DocumentRepository
	results ports.ResultRepository
}

func NewQueryResultsUseCase(repo ports.DocumentRepository, results ports.ResultRepository) *QueryResultsUseCase {
	return &QueryResultsUseCase{repo: repo, results: results}
}

func (uc *QueryResultsUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *QueryResultsUseCase) GetResult(ctx context.Context, documentID string) (*domain.ExtractionResult, error) {
	if _, err := uc.repo.GetByID(ctx, documentID); err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	result, err := uc.results.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch extraction result: %w", err)
	}
	return result, nil
}

func (uc *QueryResultsUseCase) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Document, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	docs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
