package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
)

type queryRepoFake struct {
	doc        *domain.Document
	getErr     error
	lastFilter domain.ListFilter
	listed     []*domain.Document
}

func (f *queryRepoFake) Create(context.Context, *domain.Document) error {
	return errors.New("not implemented")
}

func (f *queryRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *queryRepoFake) List(_ context.Context, filter domain.ListFilter) ([]*domain.Document, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *queryRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return errors.New("not implemented")
}

func (f *queryRepoFake) UpdateMethods(context.Context, string, domain.OCRMethod, domain.ExtractionMethod) error {
	return errors.New("not implemented")
}

type queryResultsFake struct {
	result *domain.ExtractionResult
	err    error
}

func (f *queryResultsFake) Save(context.Context, *domain.ExtractionResult) error {
	return errors.New("not implemented")
}

func (f *queryResultsFake) GetByDocumentID(context.Context, string) (*domain.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *queryResultsFake) ListForExport(context.Context, domain.ExportFilter) ([]*domain.ExtractionResult, error) {
	return nil, errors.New("not implemented")
}

func TestGetResultChecksDocumentFirst(t *testing.T) {
	repo := &queryRepoFake{getErr: domain.ErrDocumentNotFound}
	results := &queryResultsFake{result: &domain.ExtractionResult{DocumentID: "doc-1"}}
	uc := NewQueryResultsUseCase(repo, results)

	_, err := uc.GetResult(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("err = %v, want document not found", err)
	}
}

func TestGetResultSuccess(t *testing.T) {
	repo := &queryRepoFake{doc: &domain.Document{ID: "doc-1", Status: domain.StatusReady}}
	results := &queryResultsFake{result: &domain.ExtractionResult{DocumentID: "doc-1", Confidence: 86}}
	uc := NewQueryResultsUseCase(repo, results)

	result, err := uc.GetResult(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetResult() error = %v", err)
	}
	if result.Confidence != 86 {
		t.Fatalf("confidence = %d", result.Confidence)
	}
}

func TestListClampsPagination(t *testing.T) {
	repo := &queryRepoFake{}
	uc := NewQueryResultsUseCase(repo, &queryResultsFake{})

	if _, err := uc.List(context.Background(), domain.ListFilter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastFilter.Limit != defaultListLimit {
		t.Fatalf("default limit = %d", repo.lastFilter.Limit)
	}

	if _, err := uc.List(context.Background(), domain.ListFilter{Limit: 10_000, Offset: -3}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastFilter.Limit != maxListLimit {
		t.Fatalf("clamped limit = %d", repo.lastFilter.Limit)
	}
	if repo.lastFilter.Offset != 0 {
		t.Fatalf("negative offset must clamp to zero, got %d", repo.lastFilter.Offset)
	}
}
