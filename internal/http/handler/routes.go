package handler

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pdfviewer/internal/chat"
	"pdfviewer/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; validation and persistence live in
// the injected services.
func RegisterRoutes(app *fiber.App, svc service.FileService, proxy *chat.Proxy, recentLimit int, metrics prometheus.Gatherer) {
	app.Get("/", Index(svc, recentLimit))
	app.Post("/", Upload(svc))
	app.Get("/view/:key", ViewPDF(svc))
	app.Get("/pdf/:key", ServePDF(svc))
	app.Post("/chat", Chat(proxy))

	app.Get("/health", HealthCheck(svc))
	app.Get("/healthz", LivenessProbe())

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))
	}
}
