package ports

import (
	"context"
	"io"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	UpdateMethods(ctx context.Context, id string, ocr domain.OCRMethod, extraction domain.ExtractionMethod) error
}

// ResultRepository persists and reads extraction results.
type ResultRepository interface {
	Save(ctx context.Context, result *domain.ExtractionResult) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.ExtractionResult, error)
	ListForExport(ctx context.Context, filter domain.ExportFilter) ([]*domain.ExtractionResult, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// RecognizedText is one acquisition outcome with its provider metadata.
type RecognizedText struct {
	Text        string
	Acquisition domain.Acquisition
}

// TextRecognizer turns a stored document into raw text using one
// acquisition provider.
type TextRecognizer interface {
	Recognize(ctx context.Context, method domain.OCRMethod, doc *domain.Document, data io.Reader) (*RecognizedText, error)
}

// ResultSpreadsheetWriter renders extraction results as a spreadsheet
// document.
type ResultSpreadsheetWriter interface {
	Write(results []*domain.ExtractionResult, out io.Writer) error
}

// EntityRecognizer finds named entities in raw text for the NLP
// extraction family.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) (domain.Entities, error)
}

// LLMFieldExtractor asks a language model for the per-type field set of a
// text and returns the validated generic mapping.
type LLMFieldExtractor interface {
	ExtractFields(ctx context.Context, docType domain.DocumentType, text string) (map[string]any, error)
}
