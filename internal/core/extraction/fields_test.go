package extraction

import (
	"regexp"
	"testing"
)

func TestExtractFirstHonorsPatternOrder(t *testing.T) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`FACTURA\s+N[º°]?\s*(\S+)`),
		regexp.MustCompile(`(\d{4}-\d{8})`),
	}
	text := "Comprobante 0001-00001234 emitido hoy"

	if got := extractFirst(text, patterns); got != "0001-00001234" {
		t.Fatalf("extractFirst() = %q", got)
	}
	if got := extractFirst("sin números acá", patterns); got != "" {
		t.Fatalf("no match must yield empty, got %q", got)
	}
}

func TestExtractScoredPrefersStructuralFit(t *testing.T) {
	fp := FieldPatterns{
		Field: "numero_dni",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`DNI\s*N?[º°]?\s*([\d\.]+)`),
			regexp.MustCompile(`Documento:\s*(\d+)`),
		},
	}
	text := "DNI Nº 123 ... Documento: 34567890"

	if got := extractScored(text, fp, scoreIdentity); got != "34567890" {
		t.Fatalf("extractScored() = %q, want the 8-digit candidate", got)
	}
}

func TestExtractScoredRejectsAllCandidates(t *testing.T) {
	fp := FieldPatterns{
		Field:    "numero_dni",
		Patterns: []*regexp.Regexp{regexp.MustCompile(`N[º°]\s*(\d+)`)},
	}
	// Too short for a document number, so the field must stay absent.
	if got := extractScored("Nº 123", fp, scoreIdentity); got != "" {
		t.Fatalf("invalid candidates must be dropped, got %q", got)
	}
}

func TestExtractScoredAcademicDropsStopwords(t *testing.T) {
	fp := FieldPatterns{
		Field:    "institucion",
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)otorgado por\s+([A-Za-zÁÉÍÓÚÑáéíóúñ]+)`)},
	}
	if got := extractScored("otorgado por el", fp, scoreAcademic); got != "" {
		t.Fatalf("bare article must not survive as an institution, got %q", got)
	}

	fp = FieldPatterns{
		Field:    "institucion",
		Patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)otorgado por la\s+([A-Za-zÁÉÍÓÚÑáéíóúñ\s]+)`)},
	}
	got := extractScored("otorgado por la Universidad de Buenos Aires", fp, scoreAcademic)
	if got != "Universidad de Buenos Aires" {
		t.Fatalf("extractScored() = %q", got)
	}
}

func TestCleanCandidateTrimsPunctuationAndWhitespace(t *testing.T) {
	if got := cleanCandidate("  EMPRESA   EJEMPLO S.A.,  "); got != "EMPRESA EJEMPLO S.A" {
		t.Fatalf("cleanCandidate() = %q", got)
	}
}
