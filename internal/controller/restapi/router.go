package restapi

import (
	"github.com/andreyxaxa/Photo-Gallery/config"
	v1 "github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Photo-Gallery/internal/usecase"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Photo gallery
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	img usecase.ImageHostUseCase,
	rec usecase.RecordUseCase,
	feed usecase.ChangeFeed,
	l logger.Interface,
) {
	app.Use(recover.New())

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Prometheus
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// K8s probe
	app.Get("/healthz", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewGalleryRoutes(apiV1Group, img, rec, feed, l)
	}
}
