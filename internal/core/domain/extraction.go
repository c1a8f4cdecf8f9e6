package domain

import (
	"fmt"
	"time"
)

// ExtractionMethod is a field-extraction strategy family.
type ExtractionMethod string

const (
	ExtractionAuto   ExtractionMethod = "auto"
	ExtractionRegex  ExtractionMethod = "regex"
	ExtractionNLP    ExtractionMethod = "nlp"
	ExtractionLLM    ExtractionMethod = "llm"
	ExtractionHybrid ExtractionMethod = "hybrid"
)

// NominalConfidence is the fixed confidence attributed to a method when it
// succeeds, fed into the aggregate document score.
func (m ExtractionMethod) NominalConfidence() float64 {
	switch m {
	case ExtractionRegex:
		return 0.65
	case ExtractionNLP:
		return 0.75
	case ExtractionHybrid:
		return 0.80
	case ExtractionLLM:
		return 0.85
	default:
		return 0
	}
}

// ExtractionMethods lists the concrete strategy families, auto excluded.
func ExtractionMethods() []ExtractionMethod {
	return []ExtractionMethod{ExtractionRegex, ExtractionNLP, ExtractionLLM, ExtractionHybrid}
}

func ParseExtractionMethod(s string) (ExtractionMethod, error) {
	switch m := ExtractionMethod(s); m {
	case "", ExtractionAuto:
		return ExtractionAuto, nil
	case ExtractionRegex, ExtractionNLP, ExtractionLLM, ExtractionHybrid:
		return m, nil
	default:
		return "", fmt.Errorf("parse extraction method: %w: %q", ErrUnsupportedMethod, s)
	}
}

// OCRMethod is a text-acquisition provider.
type OCRMethod string

const (
	OCRAuto         OCRMethod = "auto"
	OCRTesseract    OCRMethod = "tesseract"
	OCRGoogleVision OCRMethod = "google_vision"
	OCRAWSTextract  OCRMethod = "aws_textract"
)

func (m OCRMethod) NominalConfidence() float64 {
	switch m {
	case OCRTesseract:
		return 0.75
	case OCRGoogleVision:
		return 0.95
	case OCRAWSTextract:
		return 0.92
	default:
		return 0
	}
}

// CostPerPage is the provider price in USD for one recognized page.
func (m OCRMethod) CostPerPage() float64 {
	switch m {
	case OCRGoogleVision, OCRAWSTextract:
		return 0.0015
	default:
		return 0
	}
}

func OCRMethods() []OCRMethod {
	return []OCRMethod{OCRTesseract, OCRGoogleVision, OCRAWSTextract}
}

func ParseOCRMethod(s string) (OCRMethod, error) {
	switch m := OCRMethod(s); m {
	case "", OCRAuto:
		return OCRAuto, nil
	case OCRTesseract, OCRGoogleVision, OCRAWSTextract:
		return m, nil
	default:
		return "", fmt.Errorf("parse ocr method: %w: %q", ErrUnsupportedMethod, s)
	}
}

// Acquisition describes how the raw text of a document was obtained.
type Acquisition struct {
	Provider   string  `json:"provider"`
	Confidence float64 `json:"confidence"`
	Cost       float64 `json:"cost"`
	Fallback   bool    `json:"fallback,omitempty"`
}

// ExtractionRequest carries one text through the engine. DeclaredType may
// be empty, in which case the engine classifies the text itself.
type ExtractionRequest struct {
	Text         string
	DeclaredType DocumentType
	Method       ExtractionMethod
	Acquisition  Acquisition
}

// FieldValidation is the per-field verdict attached to a result. A failed
// validation never removes the field or aborts the extraction.
type FieldValidation struct {
	Value       string   `json:"value,omitempty"`
	Valid       bool     `json:"valid"`
	Confidence  float64  `json:"confidence"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ValidationSummary aggregates the per-field verdicts of one document.
type ValidationSummary struct {
	DetectedType    DocumentType `json:"detected_type"`
	Valid           bool         `json:"valid"`
	Confidence      float64      `json:"confidence"`
	Errors          []string     `json:"errors,omitempty"`
	Warnings        []string     `json:"warnings,omitempty"`
	Recommendations []string     `json:"recommendations,omitempty"`
}

// ExtractionResult is the structured output of one extraction run. Fields
// omitted by the extractor are absent from the field set, never empty.
type ExtractionResult struct {
	DocumentID   string                     `json:"document_id,omitempty"`
	DocumentType DocumentType               `json:"document_type"`
	Fields       FieldSet                   `json:"-"`
	Confidence   int                        `json:"confidence"`
	MethodUsed   string                     `json:"method_used"`
	Acquisition  Acquisition                `json:"acquisition"`
	Validation   map[string]FieldValidation `json:"validation,omitempty"`
	Summary      *ValidationSummary         `json:"summary,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
}
