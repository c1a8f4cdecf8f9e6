package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

type ReprocessDocumentUseCase struct {
	repo  ports.DocumentRepository
	queue ports.MessageQueue
}

func NewReprocessDocumentUseCase(repo ports.DocumentRepository, queue ports.MessageQueue) *ReprocessDocumentUseCase {
	return &ReprocessDocumentUseCase{repo: repo, queue: queue}
}

// Reprocess re-enqueues an existing document, optionally switching its
// method choices first. Empty methods keep whatever the document already
// has, so a plain reprocess repeats the previous run.
func (uc *ReprocessDocumentUseCase) Reprocess(
	ctx context.Context,
	documentID string,
	ocr domain.OCRMethod,
	extraction domain.ExtractionMethod,
) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}

	if ocr == "" {
		ocr = doc.OCRMethod
	}
	if extraction == "" {
		extraction = doc.ExtractionMethod
	}
	if ocr != doc.OCRMethod || extraction != doc.ExtractionMethod {
		if err := uc.repo.UpdateMethods(ctx, doc.ID, ocr, extraction); err != nil {
			return nil, fmt.Errorf("update method choices: %w", err)
		}
		doc.OCRMethod = ocr
		doc.ExtractionMethod = extraction
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusUploaded, ""); err != nil {
		return nil, fmt.Errorf("reset status: %w", err)
	}
	doc.Status = domain.StatusUploaded
	doc.Error = ""
	doc.UpdatedAt = time.Now().UTC()

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return doc, nil
}
