package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/config"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/handlers"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/logging"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/middleware"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/retry"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Local development convenience; absence of .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_endpoint", logging.SanitizeEndpoint(cfg.LLM.Endpoint)),
		zap.String("llm_model", cfg.LLM.Model))

	visionRetry := retry.VisionDefault()
	if cfg.LLM.VisionMaxAttempts > 0 {
		visionRetry.MaxAttempts = cfg.LLM.VisionMaxAttempts
	}

	client, err := llm.NewFromProvider(cfg.LLM.Provider, &llm.Config{
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		VisionModel: cfg.LLM.VisionModel,
		APIKey:      cfg.LLM.APIKey,
	}, visionRetry, logger)
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}

	normalizer := schema.NewNormalizer(logger)

	generateService := services.NewGenerateService(client, normalizer, cfg.Analysis, logger)
	modelGenService := services.NewModelGenService(client, normalizer, cfg.ModelGen, nil, logger)
	sprintService := services.NewSprintService(client, logger)
	notesService := services.NewNotesService(client, logger)
	visionService := services.NewVisionService(client, cfg.Image, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewGenerateHandler(generateService, normalizer, cfg.Analysis, logger).RegisterRoutes(mux)
	handlers.NewModelGenHandler(modelGenService, logger).RegisterRoutes(mux)
	handlers.NewSprintHandler(sprintService, logger).RegisterRoutes(mux)
	handlers.NewNotesHandler(notesService, logger).RegisterRoutes(mux)
	handlers.NewVisionHandler(visionService, cfg.Image, logger).RegisterRoutes(mux)

	handler := middleware.RequestID()(middleware.RequestLogger(logger)(mux))

	logger.Info("Starting agent-bi-assistant",
		zap.String("addr", cfg.Addr()),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
