package usecase

import (
	"context"
	"fmt"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/extraction"
	"github.com/tavalos/papeleo/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	results    ports.ResultRepository
	storage    ports.ObjectStorage
	recognizer ports.TextRecognizer
	engine     *extraction.Engine
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	results ports.ResultRepository,
	storage ports.ObjectStorage,
	recognizer ports.TextRecognizer,
	engine *extraction.Engine,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		results:    results,
		storage:    storage,
		recognizer: recognizer,
		engine:     engine,
	}
}

// ProcessByID runs the full pipeline for one stored document: acquire the
// text, extract the fields, persist the result. The document ends in
// ready or failed state either way, and the last error is recorded on it.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.results.Save(ctx, result); err != nil {
		err = fmt.Errorf("save extraction result: %w", err)
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.ExtractionResult, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}

	recognized, err := uc.acquireText(ctx, doc)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.Extract(ctx, domain.ExtractionRequest{
		Text:         recognized.Text,
		DeclaredType: doc.DeclaredType,
		Method:       doc.ExtractionMethod,
		Acquisition:  recognized.Acquisition,
	})
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}
	result.DocumentID = doc.ID
	return result, nil
}

// acquireText resolves the OCR choice and runs the provider, retrying
// exactly once on the free local engine when a paid provider fails. The
// stored object is reopened for the retry because the first attempt may
// have consumed the reader.
func (uc *ProcessDocumentUseCase) acquireText(ctx context.Context, doc *domain.Document) (*ports.RecognizedText, error) {
	method := uc.engine.Selector().ResolveOCR(doc.OCRMethod)

	recognized, firstErr := uc.recognizeOnce(ctx, method, doc)
	if firstErr == nil {
		return recognized, nil
	}

	target, hasFallback := uc.engine.Selector().OCRFallback(method)
	if !hasFallback {
		return nil, fmt.Errorf("recognize text with %s: %w", method, firstErr)
	}

	recognized, err := uc.recognizeOnce(ctx, target, doc)
	if err != nil {
		return nil, fmt.Errorf("recognize text with %s and fallback %s: %w; first error: %v", method, target, err, firstErr)
	}
	recognized.Acquisition.Fallback = true
	return recognized, nil
}

func (uc *ProcessDocumentUseCase) recognizeOnce(ctx context.Context, method domain.OCRMethod, doc *domain.Document) (*ports.RecognizedText, error) {
	data, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored object: %w", err)
	}
	defer data.Close()
	return uc.recognizer.Recognize(ctx, method, doc, data)
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
