package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leaseintake/docs"
	"leaseintake/internal/config"
	"leaseintake/internal/database"
	"leaseintake/internal/database/migration"
	"leaseintake/internal/extract"
	handlers "leaseintake/internal/http/handler"
	"leaseintake/internal/http/middleware"
	"leaseintake/internal/llm"
	"leaseintake/internal/logger"
	"leaseintake/internal/metrics"
	"leaseintake/internal/otel"
	"leaseintake/internal/repository/postgres"
	"leaseintake/internal/service"
	"leaseintake/internal/storage"
)

// multipart framing on top of the largest accepted file
const bodyOverhead = 1 << 20

// @title Lease Intake API
// @version 1.0
// @description Upload lease documents, extract their text, structure it with an LLM and store the result per project.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("unknown APP_TIMEZONE %q, using UTC", cfg.Timezone)
		loc = time.UTC
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	textExtractor, err := extract.NewDocumentExtractor(ctx, cfg.Extract)
	if err != nil {
		log.Fatalf("failed to initialize text extraction: %v", err)
	}

	chat, err := llm.NewOpenAIChatModel(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("failed to initialize language model: %v", err)
	}
	analyzer := llm.NewClient(chat, llm.Options{
		Temperature:   cfg.LLM.Temperature,
		MaxTokens:     cfg.LLM.MaxTokens,
		MaxInputChars: cfg.LLM.MaxInputChars,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	intakeMetrics, err := metrics.NewIntake(reg)
	if err != nil {
		log.Fatalf("failed to register intake metrics: %v", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	projectRepo := postgres.NewProjectPostgres(db)
	leaseRepo := postgres.NewLeasePostgres(db)

	intakeSvc := service.NewIntakeService(service.IntakeDeps{
		Store:     objStore,
		Projects:  projectRepo,
		Leases:    leaseRepo,
		Extractor: textExtractor,
		Analyzer:  analyzer,
		Metrics:   intakeMetrics,
	}, cfg.Upload)
	projectSvc := service.NewProjectService(projectRepo, leaseRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// /api/intake carries several files; each is still checked against Upload.MaxFileBytes.
		BodyLimit: int(cfg.Upload.MaxFileBytes)*4 + bodyOverhead,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, intakeSvc, projectSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
