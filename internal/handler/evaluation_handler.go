package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/internal/service"
	"github.com/noah-isme/lld-lab-api/internal/utils"
)

// EvaluationHandler exposes evaluation HTTP endpoints scoped to a problem.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler builds a new evaluation handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires the handler routes into the router group.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/designs", h.evaluateDesigns)
	router.Post("/designs/:classId", h.evaluateClass)
	router.Post("/implementations", h.evaluateImplementations)
}

func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	kind := c.Query("kind", models.EvaluationKindDesign)

	evaluations, err := h.service.ListEvaluations(c.Context(), problemID, kind)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEvaluationKind) {
			return utils.SendError(c, fiber.StatusBadRequest, "unknown evaluation kind")
		}
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", problemID).Msg("failed to list evaluations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve evaluations")
	}

	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}

func (h *EvaluationHandler) evaluateDesigns(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluations, err := h.service.EvaluateProblem(c.Context(), problemID)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", problemID).Msg("failed to evaluate designs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate designs")
	}

	return utils.SendSuccess(c, "designs evaluated", evaluations)
}

func (h *EvaluationHandler) evaluateClass(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluation, err := h.service.EvaluateClass(c.Context(), problemID, classID)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		if errors.Is(err, service.ErrClassDesignNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class design not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("class_id", classID).Msg("failed to evaluate class design")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate class design")
	}

	return utils.SendSuccess(c, "class design evaluated", evaluation)
}

func (h *EvaluationHandler) evaluateImplementations(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluations, err := h.service.EvaluateImplementations(c.Context(), problemID)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		if errors.Is(err, service.ErrNoImplementations) {
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "no class has implementation code")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", problemID).Msg("failed to evaluate implementations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate implementations")
	}

	return utils.SendSuccess(c, "implementations evaluated", evaluations)
}
