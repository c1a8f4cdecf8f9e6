package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/extraction"
	"github.com/tavalos/papeleo/internal/core/ports"
)

const sampleInvoice = `FACTURA A
Nº: 0001-00001234
Fecha: 15/10/2024
CUIT: 20-12345678-6
Total: $15.000,50`

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc         *domain.Document
	getErr      error
	statusCalls []statusCall
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) List(context.Context, domain.ListFilter) ([]*domain.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return nil
}

func (f *processRepoFake) UpdateMethods(context.Context, string, domain.OCRMethod, domain.ExtractionMethod) error {
	return errors.New("not implemented")
}

type processResultsFake struct {
	saved   *domain.ExtractionResult
	saveErr error
}

func (f *processResultsFake) Save(_ context.Context, result *domain.ExtractionResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = result
	return nil
}

func (f *processResultsFake) GetByDocumentID(context.Context, string) (*domain.ExtractionResult, error) {
	return nil, errors.New("not implemented")
}

func (f *processResultsFake) ListForExport(context.Context, domain.ExportFilter) ([]*domain.ExtractionResult, error) {
	return nil, errors.New("not implemented")
}

type processStorageFake struct {
	opens int
}

func (f *processStorageFake) Save(context.Context, string, io.Reader) error {
	return errors.New("not implemented")
}

func (f *processStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	f.opens++
	return io.NopCloser(strings.NewReader("raw bytes")), nil
}

type recognizerFake struct {
	text   string
	failOn map[domain.OCRMethod]error
	calls  []domain.OCRMethod
}

func (f *recognizerFake) Recognize(_ context.Context, method domain.OCRMethod, _ *domain.Document, _ io.Reader) (*ports.RecognizedText, error) {
	f.calls = append(f.calls, method)
	if err := f.failOn[method]; err != nil {
		return nil, err
	}
	return &ports.RecognizedText{
		Text: f.text,
		Acquisition: domain.Acquisition{
			Provider:   string(method),
			Confidence: method.NominalConfidence(),
			Cost:       method.CostPerPage(),
		},
	}, nil
}

func newProcessEngine(caps extraction.Capabilities) *extraction.Engine {
	return extraction.NewEngine(extraction.NewLibrary(), extraction.NewSelector(caps, 0), extraction.DefaultRules(), nil, nil, 0, nil)
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{
		ID:               "doc-1",
		StoragePath:      "doc-1_factura.pdf",
		OCRMethod:        domain.OCRAuto,
		ExtractionMethod: domain.ExtractionRegex,
	}}
	results := &processResultsFake{}
	recognizer := &recognizerFake{text: sampleInvoice}
	uc := NewProcessDocumentUseCase(repo, results, &processStorageFake{}, recognizer, newProcessEngine(extraction.Capabilities{}))

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusReady {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if len(recognizer.calls) != 1 || recognizer.calls[0] != domain.OCRTesseract {
		t.Fatalf("auto acquisition must run tesseract, got %v", recognizer.calls)
	}
	if results.saved == nil {
		t.Fatalf("expected a saved result")
	}
	if results.saved.DocumentID != "doc-1" {
		t.Fatalf("result document id = %s", results.saved.DocumentID)
	}
	if results.saved.DocumentType != domain.TypeFactura {
		t.Fatalf("document type = %s", results.saved.DocumentType)
	}
}

func TestProcessByIDOCRFallback(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{
		ID:               "doc-1",
		StoragePath:      "doc-1_factura.pdf",
		OCRMethod:        domain.OCRGoogleVision,
		ExtractionMethod: domain.ExtractionRegex,
	}}
	results := &processResultsFake{}
	storage := &processStorageFake{}
	recognizer := &recognizerFake{
		text:   sampleInvoice,
		failOn: map[domain.OCRMethod]error{domain.OCRGoogleVision: errors.New("quota exceeded")},
	}
	uc := NewProcessDocumentUseCase(repo, results, storage, recognizer, newProcessEngine(extraction.Capabilities{CloudVision: true}))

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(recognizer.calls) != 2 || recognizer.calls[1] != domain.OCRTesseract {
		t.Fatalf("expected vision then tesseract, got %v", recognizer.calls)
	}
	if storage.opens != 2 {
		t.Fatalf("the retry must reopen the stored object, opens = %d", storage.opens)
	}
	if !results.saved.Acquisition.Fallback {
		t.Fatalf("fallback acquisition must be marked, got %+v", results.saved.Acquisition)
	}
	if results.saved.Acquisition.Provider != string(domain.OCRTesseract) {
		t.Fatalf("provider = %s", results.saved.Acquisition.Provider)
	}
}

func TestProcessByIDMarksFailedOnRecognizeError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{
		ID:               "doc-1",
		StoragePath:      "doc-1_factura.pdf",
		OCRMethod:        domain.OCRTesseract,
		ExtractionMethod: domain.ExtractionRegex,
	}}
	recognizer := &recognizerFake{
		failOn: map[domain.OCRMethod]error{domain.OCRTesseract: errors.New("binary missing")},
	}
	uc := NewProcessDocumentUseCase(repo, &processResultsFake{}, &processStorageFake{}, recognizer, newProcessEngine(extraction.Capabilities{}))

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
	if repo.statusCalls[1].errMsg == "" {
		t.Fatalf("the failure reason must be recorded on the document")
	}
}

func TestProcessByIDMarksFailedOnShortText(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{
		ID:               "doc-1",
		StoragePath:      "doc-1_blank.pdf",
		OCRMethod:        domain.OCRAuto,
		ExtractionMethod: domain.ExtractionAuto,
	}}
	recognizer := &recognizerFake{text: "x"}
	uc := NewProcessDocumentUseCase(repo, &processResultsFake{}, &processStorageFake{}, recognizer, newProcessEngine(extraction.Capabilities{}))

	err := uc.ProcessByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrInsufficientText) {
		t.Fatalf("err = %v, want insufficient text", err)
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnSaveError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{
		ID:               "doc-1",
		StoragePath:      "doc-1_factura.pdf",
		OCRMethod:        domain.OCRAuto,
		ExtractionMethod: domain.ExtractionRegex,
	}}
	results := &processResultsFake{saveErr: errors.New("db down")}
	uc := NewProcessDocumentUseCase(repo, results, &processStorageFake{}, &recognizerFake{text: sampleInvoice}, newProcessEngine(extraction.Capabilities{}))

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}
