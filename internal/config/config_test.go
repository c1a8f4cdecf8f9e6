package config

import "testing"

func TestLoadExtractionDefaults(t *testing.T) {
	t.Setenv("LLM_AUTO_THRESHOLD", "")
	t.Setenv("MIN_TEXT_LENGTH", "")
	t.Setenv("TESSERACT_PATH", "")
	t.Setenv("TESSERACT_LANGS", "")
	t.Setenv("EXTRACTION_RULES_PATH", "")

	cfg := Load()
	if cfg.LLMAutoThreshold != 500 {
		t.Fatalf("expected default llm auto threshold 500, got %d", cfg.LLMAutoThreshold)
	}
	if cfg.MinTextLength != 10 {
		t.Fatalf("expected default min text length 10, got %d", cfg.MinTextLength)
	}
	if cfg.TesseractPath != "tesseract" {
		t.Fatalf("expected default tesseract path, got %q", cfg.TesseractPath)
	}
	if cfg.TesseractLangs != "spa" {
		t.Fatalf("expected default tesseract langs spa, got %q", cfg.TesseractLangs)
	}
	if cfg.ExtractionRulesPath != "" {
		t.Fatalf("expected no default rules path, got %q", cfg.ExtractionRulesPath)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "https://api.example.com/v1")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_AUTO_THRESHOLD", "800")
	t.Setenv("VISION_API_KEY", "vision-key")
	t.Setenv("API_RATE_LIMIT_RPS", "25")
	t.Setenv("API_RATE_LIMIT_BURST", "50")
	t.Setenv("API_MAX_CONCURRENT", "64")

	cfg := Load()
	if cfg.LLMBaseURL != "https://api.example.com/v1" {
		t.Fatalf("expected llm base url override, got %q", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Fatalf("expected llm model override, got %q", cfg.LLMModel)
	}
	if cfg.LLMAutoThreshold != 800 {
		t.Fatalf("expected llm auto threshold 800, got %d", cfg.LLMAutoThreshold)
	}
	if cfg.VisionAPIKey != "vision-key" {
		t.Fatalf("expected vision api key override, got %q", cfg.VisionAPIKey)
	}
	if cfg.APIRateLimitRPS != 25 || cfg.APIRateLimitBurst != 50 {
		t.Fatalf("expected rate limit overrides, got rps=%d burst=%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.APIMaxConcurrent != 64 {
		t.Fatalf("expected max concurrent 64, got %d", cfg.APIMaxConcurrent)
	}
}

func TestLoadFallsBackOnBadInt(t *testing.T) {
	t.Setenv("MIN_TEXT_LENGTH", "not-a-number")

	cfg := Load()
	if cfg.MinTextLength != 10 {
		t.Fatalf("expected fallback min text length 10, got %d", cfg.MinTextLength)
	}
}
