package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

// DefaultMinTextLength gates extraction: shorter inputs are OCR noise and
// fail fast instead of producing an empty success.
const DefaultMinTextLength = 10

// Engine is the orchestrator of one extraction run: classify when needed,
// pick a method, run it with the single-retry fallback, validate fields
// and score the result. It holds only immutable configuration and shared
// collaborators, so one instance serves all requests concurrently.
type Engine struct {
	lib        *Library
	sel        *Selector
	rules      Rules
	nlp        ports.EntityRecognizer
	llm        ports.LLMFieldExtractor
	minTextLen int
	log        *slog.Logger
}

func NewEngine(
	lib *Library,
	sel *Selector,
	rules Rules,
	nlp ports.EntityRecognizer,
	llm ports.LLMFieldExtractor,
	minTextLen int,
	log *slog.Logger,
) *Engine {
	if minTextLen <= 0 {
		minTextLen = DefaultMinTextLength
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		lib:        lib,
		sel:        sel,
		rules:      rules,
		nlp:        nlp,
		llm:        llm,
		minTextLen: minTextLen,
		log:        log,
	}
}

// Selector exposes the method selector for callers that resolve
// acquisition methods through the same capability table.
func (e *Engine) Selector() *Selector { return e.sel }

// Extract runs the full pipeline over one text and returns the structured
// record. Absent fields are omitted, validation failures are recorded but
// never abort the run, and only insufficient input or a double method
// failure surface as errors.
func (e *Engine) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	text := strings.TrimSpace(norm.NFC.String(req.Text))
	if runeLen(text) < e.minTextLen {
		return nil, domain.WrapError(
			domain.ErrInsufficientText,
			"extract",
			fmt.Errorf("got %d characters, need at least %d", runeLen(text), e.minTextLen),
		)
	}

	docType := req.DeclaredType
	if docType == "" {
		docType = e.lib.Classify(text)
	}

	method := e.sel.ResolveExtraction(req.Method, runeLen(text))

	fields, ranMethod, methodUsed, err := runWithFallback(ctx, method, e.sel.ExtractionFallback,
		func(ctx context.Context, m domain.ExtractionMethod) runResult {
			return e.runMethod(ctx, m, docType, text)
		})
	if err != nil {
		return nil, err
	}
	if methodUsed != string(ranMethod) {
		e.log.Warn("extraction_fallback", "requested", string(method), "ran", string(ranMethod), "document_type", string(docType))
	}

	resultType := fields.Kind()
	flat := fields.Map()
	validation, summary := e.rules.Validate(resultType, flat)
	annotateAFIP(fields, validation)

	fieldsFound := len(flat)
	if _, tagged := flat["tipo_documento"]; tagged {
		fieldsFound--
	}

	return &domain.ExtractionResult{
		DocumentType: resultType,
		Fields:       fields,
		Confidence:   domain.ConfidenceScore(req.Acquisition.Confidence, ranMethod.NominalConfidence(), fieldsFound),
		MethodUsed:   methodUsed,
		Acquisition:  req.Acquisition,
		Validation:   validation,
		Summary:      summary,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// runMethod executes one extraction family. The pattern family cannot
// fail; the NLP and LLM families fail when their collaborator is missing
// or errors, which routes them through the fallback contract.
func (e *Engine) runMethod(ctx context.Context, m domain.ExtractionMethod, docType domain.DocumentType, text string) runResult {
	switch m {
	case domain.ExtractionRegex:
		return okRun(e.runPatterns(docType, text))

	case domain.ExtractionNLP:
		if e.nlp == nil {
			return errRun(domain.WrapError(domain.ErrUnsupportedMethod, "nlp extraction", errors.New("no entity recognizer configured")))
		}
		ents, err := e.nlp.Recognize(ctx, text)
		if err != nil {
			return errRun(fmt.Errorf("recognize entities: %w", err))
		}
		return okRun(bindEntities(docType, ents))

	case domain.ExtractionHybrid:
		patterns := e.runPatterns(docType, text)
		nlpRun := e.runMethod(ctx, domain.ExtractionNLP, docType, text)
		if nlpRun.err != nil {
			return errRun(fmt.Errorf("hybrid nlp leg: %w", nlpRun.err))
		}
		return okRun(mergeFieldSets(patterns, nlpRun.fields))

	case domain.ExtractionLLM:
		if e.llm == nil {
			return errRun(domain.WrapError(domain.ErrUnsupportedMethod, "llm extraction", errors.New("no llm extractor configured")))
		}
		values, err := e.llm.ExtractFields(ctx, docType, text)
		if err != nil {
			return errRun(fmt.Errorf("llm field extraction: %w", err))
		}
		return okRun(bindLLMFields(docType, values))

	default:
		return errRun(domain.WrapError(domain.ErrUnsupportedMethod, "run method", fmt.Errorf("unknown method %q", m)))
	}
}

// runPatterns dispatches the pattern family per document type. Facturas
// with enough fiscal markers take the rigid AFIP table.
func (e *Engine) runPatterns(docType domain.DocumentType, text string) domain.FieldSet {
	switch docType {
	case domain.TypeFactura, domain.TypeFacturaAFIP:
		if docType == domain.TypeFacturaAFIP || e.lib.IsAFIPInvoice(text) {
			return extractAFIP(e.lib, text)
		}
		return extractInvoice(e.lib, text)
	case domain.TypeRecibo, domain.TypeBoleta:
		return extractReceipt(e.lib, text)
	case domain.TypeDNI, domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		return extractIdentity(e.lib, docType, text)
	case domain.TypeTitulo, domain.TypeDiploma, domain.TypeLicencia:
		return extractTitulo(e.lib, text)
	case domain.TypeCertificado:
		return extractCertificado(e.lib, text)
	default:
		return extractGeneric(docType, text)
	}
}

// annotateAFIP layers the fiscal checks onto an AFIP result: CAE format
// with its expiry, and both CUIT check digits.
func annotateAFIP(fields domain.FieldSet, validation map[string]domain.FieldValidation) {
	afip, ok := fields.(domain.AFIPInvoiceFields)
	if !ok || validation == nil {
		return
	}
	if afip.Autorizacion.CAENumero != "" {
		validation["cae"] = ValidateCAE(afip.Autorizacion.CAENumero, afip.Autorizacion.CAEVencimiento)
	}
	if afip.Emisor.CUIT != "" {
		validation["cuit_emisor"] = ValidateCUIT(afip.Emisor.CUIT)
	}
	if afip.Comprador.CUIT != "" {
		validation["cuit_comprador"] = ValidateCUIT(afip.Comprador.CUIT)
	}
}
