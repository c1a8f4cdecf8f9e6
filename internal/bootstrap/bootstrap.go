package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tavalos/papeleo/internal/config"
	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/extraction"
	"github.com/tavalos/papeleo/internal/core/ports"
	"github.com/tavalos/papeleo/internal/core/usecase"
	"github.com/tavalos/papeleo/internal/infrastructure/export/excel"
	"github.com/tavalos/papeleo/internal/infrastructure/llm/openaicompat"
	"github.com/tavalos/papeleo/internal/infrastructure/nlp"
	"github.com/tavalos/papeleo/internal/infrastructure/ocr"
	"github.com/tavalos/papeleo/internal/infrastructure/queue/nats"
	"github.com/tavalos/papeleo/internal/infrastructure/repository/postgres"
	"github.com/tavalos/papeleo/internal/infrastructure/resilience"
	"github.com/tavalos/papeleo/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue   ports.MessageQueue
	Repo    ports.DocumentRepository
	Results ports.ResultRepository

	IngestUC    ports.DocumentIngestor
	ProcessUC   ports.DocumentProcessor
	ReprocessUC ports.DocumentReprocessor
	ReadUC      ports.DocumentReader
	AnalyzeUC   ports.TextAnalyzer
	MethodsUC   ports.MethodCatalogProvider
	ExportUC    ports.ResultExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	results := postgres.NewResultRepository(db)
	if err := results.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure results schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	registry := ocr.NewRegistry()
	registry.Register(
		domain.OCRTesseract,
		ocr.NewTesseract(cfg.TesseractPath, cfg.PdftoppmPath, cfg.TesseractLangs),
	)
	visionEnabled := cfg.VisionAPIKey != ""
	if visionEnabled {
		registry.Register(
			domain.OCRGoogleVision,
			ocr.NewGoogleVision(cfg.VisionBaseURL, cfg.VisionAPIKey, executor),
		)
	}

	recognizer := nlp.NewHeuristic()

	var llmClient ports.LLMFieldExtractor
	llmEnabled := cfg.LLMBaseURL != ""
	if llmEnabled {
		llmClient = openaicompat.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, executor)
	}

	caps := extraction.Capabilities{
		NLP:         true,
		LLM:         llmEnabled,
		CloudVision: visionEnabled,
	}
	selector := extraction.NewSelector(caps, cfg.LLMAutoThreshold)

	rules, err := extraction.LoadRules(cfg.ExtractionRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load extraction rules: %w", err)
	}

	engine := extraction.NewEngine(
		extraction.NewLibrary(),
		selector,
		rules,
		recognizer,
		llmClient,
		cfg.MinTextLength,
		slog.Default(),
	)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, results, storage, registry, engine)
	reprocessUC := usecase.NewReprocessDocumentUseCase(repo, queue)
	readUC := usecase.NewQueryResultsUseCase(repo, results)
	analyzeUC := usecase.NewAnalyzeTextUseCase(engine)
	methodsUC := usecase.NewMethodCatalogUseCase(selector)
	exportUC := usecase.NewExportResultsUseCase(results, excel.NewWriter())

	return &App{
		Config: cfg,

		Queue:   queue,
		Repo:    repo,
		Results: results,

		IngestUC:    ingestUC,
		ProcessUC:   processUC,
		ReprocessUC: reprocessUC,
		ReadUC:      readUC,
		AnalyzeUC:   analyzeUC,
		MethodsUC:   methodsUC,
		ExportUC:    exportUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
