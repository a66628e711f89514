package restapi

import (
	"net/http"

	"github.com/andreyxaxa/hr-outbox/config"
	v1 "github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1"
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title HR outbox
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	emp usecase.EmployeeUseCase,
	dep usecase.DepartmentUseCase,
	pos usecase.PositionUseCase,
	outbox usecase.OutboxUseCase,
	gatherer prometheus.Gatherer,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// K8s probe
	app.Get("/healthz", func(ctx *fiber.Ctx) error { return ctx.SendStatus(http.StatusOK) })

	// Prometheus metrics
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewHRRoutes(apiV1Group, emp, dep, pos, outbox, l)
	}
}
