package domain

import "testing"

func TestConfidenceScore(t *testing.T) {
	cases := []struct {
		name        string
		acquisition float64
		method      float64
		fields      int
		want        int
	}{
		{"no fields", 0.75, 0.65, 0, 49},
		{"bonus per field", 0.75, 0.65, 3, 64},
		{"bonus capped at thirty", 0.75, 0.65, 12, 79},
		{"clamped to one hundred", 1.0, 1.0, 12, 100},
		{"zero floor", 0, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ConfidenceScore(tc.acquisition, tc.method, tc.fields)
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
			if got < 0 || got > 100 {
				t.Fatalf("score %d out of bounds", got)
			}
		})
	}
}

func TestParseExtractionMethod(t *testing.T) {
	if m, err := ParseExtractionMethod(""); err != nil || m != ExtractionAuto {
		t.Fatalf("empty method must resolve to auto, got %s err %v", m, err)
	}
	if m, err := ParseExtractionMethod("hybrid"); err != nil || m != ExtractionHybrid {
		t.Fatalf("expected hybrid, got %s err %v", m, err)
	}
	if _, err := ParseExtractionMethod("quantum"); !IsKind(err, ErrUnsupportedMethod) {
		t.Fatalf("expected unsupported method error, got %v", err)
	}
}

func TestParseOCRMethod(t *testing.T) {
	if m, err := ParseOCRMethod("google_vision"); err != nil || m != OCRGoogleVision {
		t.Fatalf("expected google_vision, got %s err %v", m, err)
	}
	if _, err := ParseOCRMethod("abbyy"); !IsKind(err, ErrUnsupportedMethod) {
		t.Fatalf("expected unsupported method error, got %v", err)
	}
}

func TestMethodTables(t *testing.T) {
	if got := ExtractionRegex.NominalConfidence(); got != 0.65 {
		t.Fatalf("regex confidence: got %v", got)
	}
	if got := ExtractionLLM.NominalConfidence(); got != 0.85 {
		t.Fatalf("llm confidence: got %v", got)
	}
	if got := OCRTesseract.CostPerPage(); got != 0 {
		t.Fatalf("tesseract must be free, got %v", got)
	}
	if got := OCRGoogleVision.CostPerPage(); got != 0.0015 {
		t.Fatalf("vision cost: got %v", got)
	}
}
