package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func TestRunWithFallbackRetriesOnce(t *testing.T) {
	var calls []domain.ExtractionMethod
	fields, ran, used, err := runWithFallback(context.Background(), domain.ExtractionLLM,
		NewSelector(Capabilities{LLM: true}, 0).ExtractionFallback,
		func(_ context.Context, m domain.ExtractionMethod) runResult {
			calls = append(calls, m)
			if m == domain.ExtractionLLM {
				return errRun(errors.New("model down"))
			}
			return okRun(domain.GenericFields{Tipo: domain.TypeDesconocido})
		})
	if err != nil {
		t.Fatalf("runWithFallback() error = %v", err)
	}
	if used != "llm_fallback" {
		t.Errorf("methodUsed = %q", used)
	}
	if ran != domain.ExtractionRegex {
		t.Errorf("ran = %q", ran)
	}
	if fields == nil {
		t.Errorf("expected the fallback fields")
	}
	if len(calls) != 2 || calls[0] != domain.ExtractionLLM || calls[1] != domain.ExtractionRegex {
		t.Errorf("calls = %v", calls)
	}
}

func TestRunWithFallbackDoubleFailureIsTerminal(t *testing.T) {
	primaryErr := errors.New("model down")
	fallbackErr := errors.New("patterns broke too")
	_, _, _, err := runWithFallback(context.Background(), domain.ExtractionLLM,
		NewSelector(Capabilities{LLM: true}, 0).ExtractionFallback,
		func(_ context.Context, m domain.ExtractionMethod) runResult {
			if m == domain.ExtractionLLM {
				return errRun(primaryErr)
			}
			return errRun(fallbackErr)
		})
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("err = %v, want extraction failed", err)
	}
	if !errors.Is(err, primaryErr) || !errors.Is(err, fallbackErr) {
		t.Errorf("both failures must stay inspectable, err = %v", err)
	}
}

func TestRunWithFallbackRegexHasNoSafetyNet(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	_, _, _, err := runWithFallback(context.Background(), domain.ExtractionRegex,
		NewSelector(Capabilities{}, 0).ExtractionFallback,
		func(_ context.Context, _ domain.ExtractionMethod) runResult {
			calls++
			return errRun(boom)
		})
	if !domain.IsKind(err, domain.ErrExtractionFailed) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Errorf("the simplest method must not retry, ran %d times", calls)
	}
}
