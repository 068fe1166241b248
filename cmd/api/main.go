package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"pdfviewer/internal/chat"
	"pdfviewer/internal/config"
	handlers "pdfviewer/internal/http/handler"
	"pdfviewer/internal/http/middleware"
	"pdfviewer/internal/otel"
	"pdfviewer/internal/service"
	"pdfviewer/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	// Flat-directory PDF store under the configured upload dir
	store, err := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	fileSvc := service.NewFileService(store, cfg.Upload.MaxBytes)

	// Without an API key the chat proxy runs in degraded mode and never
	// calls out.
	var completer chat.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = chat.NewOpenAICompleter(cfg.OpenAI)
	}
	proxy := chat.NewProxy(completer)

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom over the upload cap so oversized files reach the
		// handler and get flashed back instead of a bare 413.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	registry := prometheus.NewRegistry()
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMw.Handler())

	app.Static("/static", "./static")

	handlers.RegisterRoutes(app, fileSvc, proxy, cfg.Upload.RecentLimit, registry)

	addr := cfg.AppHost + ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
