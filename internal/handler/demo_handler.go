package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/service"
	"github.com/noah-isme/lld-lab-api/internal/utils"
)

// DemoHandler exposes the sandboxed demo run endpoint.
type DemoHandler struct {
	service service.DemoService
	logger  zerolog.Logger
}

// NewDemoHandler builds a new demo handler.
func NewDemoHandler(service service.DemoService, logger zerolog.Logger) *DemoHandler {
	return &DemoHandler{
		service: service,
		logger:  logger.With().Str("component", "demo_handler").Logger(),
	}
}

// Register wires the handler routes into the router group.
func (h *DemoHandler) Register(router fiber.Router) {
	router.Post("/run", h.run)
}

func (h *DemoHandler) run(c *fiber.Ctx) error {
	var payload dto.DemoRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Run(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrUnsupportedLanguage) {
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported language")
		}
		if errors.Is(err, service.ErrSandboxUnavailable) {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "demo execution is unavailable")
		}
		requestLogger(h.logger, c).Error().Err(err).Str("language", payload.Language).Msg("failed to run demo")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to run demo")
	}

	return utils.SendSuccess(c, "demo executed", result)
}
