// Package bootstrap assembles the application from configuration: database,
// log sink, LLM client, handlers and router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vralchenko/ai-jurist/internal/analysislog"
	"github.com/vralchenko/ai-jurist/internal/analyze"
	"github.com/vralchenko/ai-jurist/internal/export"
	"github.com/vralchenko/ai-jurist/internal/extract"
	"github.com/vralchenko/ai-jurist/internal/fetch"
	"github.com/vralchenko/ai-jurist/internal/llm/groq"
	"github.com/vralchenko/ai-jurist/internal/shared/config"
	"github.com/vralchenko/ai-jurist/internal/shared/server"
	"github.com/vralchenko/ai-jurist/internal/shared/server/middleware"
	"github.com/vralchenko/ai-jurist/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Sink           analysislog.Sink
	AnalyzeService *analyze.Service
	AnalyzeHandler *analyze.Handler
	ExtractHandler *extract.Handler
	ExportHandler  *export.Handler
	Limiter        *middleware.FixedWindowLimiter

	closers []func()
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, func() { _ = sqlDB.Close() })
	}

	app.Sink = buildSink(app)

	llmClient, err := groq.NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMTimeout)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	app.AnalyzeService = &analyze.Service{
		LLM:      llmClient,
		Resolver: fetch.NewResolver(cfg.FetchTimeout),
		Sink:     app.Sink,
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
	}
	app.AnalyzeHandler = analyze.NewHandler(app.AnalyzeService)
	app.ExtractHandler = extract.NewHandler(llmClient, cfg.LLMModel)
	app.ExportHandler = export.NewHandler()
	app.Limiter = middleware.NewFixedWindowLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, nil)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		AnalyzeHandler: app.AnalyzeHandler,
		ExtractHandler: app.ExtractHandler,
		ExportHandler:  app.ExportHandler,
		Limiter:        app.Limiter,
	})

	return app, nil
}

// Close releases everything Build acquired, draining the log queue first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; analysis logs stay in memory")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; analysis logs stay in memory: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildSink(app *App) analysislog.Sink {
	if app.DB == nil {
		return analysislog.NewMemoryStore()
	}
	async := analysislog.NewAsync(&analysislog.PGStore{DB: app.DB}, app.Config.LogQueueDepth)
	app.closers = append(app.closers, async.Close)
	return async
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
