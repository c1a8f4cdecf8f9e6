package httpadapter

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tavalos/papeleo/internal/config"
	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

type ingestorFake struct {
	doc    *domain.Document
	err    error
	gotReq ports.UploadRequest
}

func (f *ingestorFake) Upload(_ context.Context, req ports.UploadRequest) (*domain.Document, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type readerFake struct {
	doc       *domain.Document
	result    *domain.ExtractionResult
	docs      []*domain.Document
	err       error
	gotFilter domain.ListFilter
}

func (f *readerFake) GetByID(_ context.Context, _ string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *readerFake) GetResult(_ context.Context, _ string) (*domain.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *readerFake) List(_ context.Context, filter domain.ListFilter) ([]*domain.Document, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type reprocessorFake struct {
	doc           *domain.Document
	err           error
	gotOCR        domain.OCRMethod
	gotExtraction domain.ExtractionMethod
}

func (f *reprocessorFake) Reprocess(_ context.Context, _ string, ocr domain.OCRMethod, extraction domain.ExtractionMethod) (*domain.Document, error) {
	f.gotOCR = ocr
	f.gotExtraction = extraction
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type analyzerFake struct {
	result    *domain.ExtractionResult
	err       error
	gotText   string
	gotType   domain.DocumentType
	gotMethod domain.ExtractionMethod
}

func (f *analyzerFake) Analyze(_ context.Context, text string, declaredType domain.DocumentType, method domain.ExtractionMethod) (*domain.ExtractionResult, error) {
	f.gotText = text
	f.gotType = declaredType
	f.gotMethod = method
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type catalogFake struct {
	catalog *domain.MethodCatalog
	err     error
}

func (f *catalogFake) Methods(context.Context) (*domain.MethodCatalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

type exporterFake struct {
	rows      int
	payload   []byte
	err       error
	gotFilter domain.ExportFilter
}

func (f *exporterFake) ExportResults(_ context.Context, filter domain.ExportFilter, out io.Writer) (int, error) {
	f.gotFilter = filter
	if f.err != nil {
		return 0, f.err
	}
	if _, err := out.Write(f.payload); err != nil {
		return 0, err
	}
	return f.rows, nil
}

type routerFixtures struct {
	ingestor    *ingestorFake
	reader      *readerFake
	reprocessor *reprocessorFake
	analyzer    *analyzerFake
	catalog     *catalogFake
	exporter    *exporterFake
}

func sampleDocument() *domain.Document {
	now := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:               "doc-1",
		Filename:         "factura.pdf",
		MimeType:         "application/pdf",
		StoragePath:      "doc-1_factura.pdf",
		OCRMethod:        domain.OCRAuto,
		ExtractionMethod: domain.ExtractionAuto,
		Status:           domain.StatusUploaded,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func newTestRouter(cfg config.Config) (*routerFixtures, http.Handler) {
	fx := &routerFixtures{
		ingestor:    &ingestorFake{doc: sampleDocument()},
		reader:      &readerFake{doc: sampleDocument()},
		reprocessor: &reprocessorFake{doc: sampleDocument()},
		analyzer:    &analyzerFake{},
		catalog:     &catalogFake{catalog: &domain.MethodCatalog{}},
		exporter:    &exporterFake{},
	}
	handler := NewRouter(
		cfg,
		fx.ingestor,
		fx.reader,
		fx.reprocessor,
		fx.analyzer,
		fx.catalog,
		fx.exporter,
		nil,
	).Handler()
	return fx, handler
}
