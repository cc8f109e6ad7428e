package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/service"
	"github.com/noah-isme/lld-lab-api/internal/utils"
)

// ProblemHandler exposes design problem HTTP endpoints.
type ProblemHandler struct {
	service service.ProblemService
	logger  zerolog.Logger
}

// NewProblemHandler builds a new problem handler.
func NewProblemHandler(service service.ProblemService, logger zerolog.Logger) *ProblemHandler {
	return &ProblemHandler{
		service: service,
		logger:  logger.With().Str("component", "problem_handler").Logger(),
	}
}

// Register wires the handler routes into the router group.
func (h *ProblemHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.save)
	router.Get("/:id", h.get)
	router.Delete("/:id", h.delete)
}

func (h *ProblemHandler) list(c *fiber.Ctx) error {
	problems, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list problems")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve problems")
	}

	return utils.SendSuccess(c, "problems retrieved", problems)
}

func (h *ProblemHandler) save(c *fiber.Ctx) error {
	var payload dto.ProblemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	problem, err := h.service.Save(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to save problem")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save problem")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "problem saved", problem)
}

func (h *ProblemHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	problem, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", id).Msg("failed to get problem")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve problem")
	}

	return utils.SendSuccess(c, "problem retrieved", problem)
}

func (h *ProblemHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", id).Msg("failed to delete problem")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete problem")
	}

	return utils.SendSuccess(c, "problem deleted", nil)
}
