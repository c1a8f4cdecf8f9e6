package ports

import (
	"context"
	"io"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// UploadRequest carries one incoming file and the caller's method choices.
type UploadRequest struct {
	Filename         string
	MimeType         string
	Body             io.Reader
	DeclaredType     domain.DocumentType
	OCRMethod        domain.OCRMethod
	ExtractionMethod domain.ExtractionMethod
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata and results.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetResult(ctx context.Context, documentID string) (*domain.ExtractionResult, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReprocessor re-enqueues an existing document, optionally with
// different method choices.
type DocumentReprocessor interface {
	Reprocess(ctx context.Context, documentID string, ocr domain.OCRMethod, extraction domain.ExtractionMethod) (*domain.Document, error)
}

// TextAnalyzer is the synchronous extraction contract for raw text the
// caller already has, bypassing storage and OCR.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string, declaredType domain.DocumentType, method domain.ExtractionMethod) (*domain.ExtractionResult, error)
}

// MethodCatalogProvider reports the available method families.
type MethodCatalogProvider interface {
	Methods(ctx context.Context) (*domain.MethodCatalog, error)
}

// ResultExporter renders extraction results to a spreadsheet.
type ResultExporter interface {
	ExportResults(ctx context.Context, filter domain.ExportFilter, out io.Writer) (int, error)
}
