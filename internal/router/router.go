package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/lld-lab-api/internal/config"
	"github.com/noah-isme/lld-lab-api/internal/handler"
	"github.com/noah-isme/lld-lab-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProblemHandler     *handler.ProblemHandler
	ClassDesignHandler *handler.ClassDesignHandler
	EvaluationHandler  *handler.EvaluationHandler
	DemoHandler        *handler.DemoHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ProblemHandler != nil {
		problems := api.Group("/problems")
		deps.ProblemHandler.Register(problems)

		if deps.ClassDesignHandler != nil {
			classes := problems.Group("/:problemId/classes")
			deps.ClassDesignHandler.Register(classes)
		}

		if deps.EvaluationHandler != nil {
			evaluations := problems.Group("/:problemId/evaluations")
			deps.EvaluationHandler.Register(evaluations)
		}
	}

	if deps.DemoHandler != nil {
		demo := api.Group("/demo")
		deps.DemoHandler.Register(demo)
	}
}
