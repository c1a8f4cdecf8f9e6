package extraction

import (
	"github.com/tavalos/papeleo/internal/core/domain"
)

// Capabilities reports which optional collaborators are configured. The
// selector never errors on an unavailable method; it resolves to the best
// method that can actually run and lets the fallback contract cover the
// rest.
type Capabilities struct {
	NLP         bool
	LLM         bool
	CloudVision bool
}

// Selector decides which extraction and acquisition families run for a
// request, and which single fallback applies when the choice fails.
type Selector struct {
	caps             Capabilities
	llmAutoThreshold int
}

// NewSelector builds a selector. A non-positive threshold keeps the
// default cutover for auto LLM extraction.
func NewSelector(caps Capabilities, llmAutoThreshold int) *Selector {
	if llmAutoThreshold <= 0 {
		llmAutoThreshold = 500
	}
	return &Selector{caps: caps, llmAutoThreshold: llmAutoThreshold}
}

func (s *Selector) Capabilities() Capabilities { return s.caps }

// ResolveExtraction turns a requested method into the one that will run.
// Auto prefers the LLM on long texts when one is configured and the
// hybrid merge otherwise. Explicit requests for unavailable collaborators
// degrade immediately rather than failing later.
func (s *Selector) ResolveExtraction(requested domain.ExtractionMethod, textLen int) domain.ExtractionMethod {
	switch requested {
	case domain.ExtractionAuto, "":
		if s.caps.LLM && textLen > s.llmAutoThreshold {
			return domain.ExtractionLLM
		}
		if !s.caps.NLP {
			return domain.ExtractionRegex
		}
		return domain.ExtractionHybrid
	case domain.ExtractionLLM:
		if !s.caps.LLM {
			return domain.ExtractionHybrid
		}
	case domain.ExtractionNLP, domain.ExtractionHybrid:
		if !s.caps.NLP {
			return domain.ExtractionRegex
		}
	}
	return requested
}

// ExtractionFallback names the single retry target for a failed method.
// Pure pattern matching is the baseline; when it is the method that
// failed there is nothing simpler left and the error propagates.
func (s *Selector) ExtractionFallback(failed domain.ExtractionMethod) (domain.ExtractionMethod, bool) {
	if failed == domain.ExtractionRegex {
		return "", false
	}
	return domain.ExtractionRegex, true
}

// ResolveOCR maps a requested acquisition method to a runnable one. Auto
// always resolves to the local engine; complexity-based selection is a
// declared extension point, not current behavior.
func (s *Selector) ResolveOCR(requested domain.OCRMethod) domain.OCRMethod {
	switch requested {
	case domain.OCRAuto, "":
		return domain.OCRTesseract
	case domain.OCRGoogleVision:
		if !s.caps.CloudVision {
			return domain.OCRTesseract
		}
	case domain.OCRAWSTextract:
		// Declared in the method table but never credentialed; the
		// local engine serves these requests.
		return domain.OCRTesseract
	}
	return requested
}

// OCRFallback names the retry target after a failed acquisition. The
// local engine is the baseline and has no fallback of its own.
func (s *Selector) OCRFallback(failed domain.OCRMethod) (domain.OCRMethod, bool) {
	if failed == domain.OCRTesseract {
		return "", false
	}
	return domain.OCRTesseract, true
}

// MethodAvailable reports whether an extraction family can run at all.
func (s *Selector) MethodAvailable(m domain.ExtractionMethod) bool {
	switch m {
	case domain.ExtractionRegex, domain.ExtractionAuto:
		return true
	case domain.ExtractionNLP, domain.ExtractionHybrid:
		return s.caps.NLP
	case domain.ExtractionLLM:
		return s.caps.LLM
	}
	return false
}

// OCRAvailable reports whether an acquisition provider can run.
func (s *Selector) OCRAvailable(m domain.OCRMethod) bool {
	switch m {
	case domain.OCRTesseract, domain.OCRAuto:
		return true
	case domain.OCRGoogleVision:
		return s.caps.CloudVision
	}
	return false
}
