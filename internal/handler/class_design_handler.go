package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/service"
	"github.com/noah-isme/lld-lab-api/internal/utils"
)

// ClassDesignHandler exposes class design HTTP endpoints scoped to a problem.
type ClassDesignHandler struct {
	service service.DesignService
	logger  zerolog.Logger
}

// NewClassDesignHandler builds a new class design handler.
func NewClassDesignHandler(service service.DesignService, logger zerolog.Logger) *ClassDesignHandler {
	return &ClassDesignHandler{
		service: service,
		logger:  logger.With().Str("component", "class_design_handler").Logger(),
	}
}

// Register wires the handler routes into the router group.
func (h *ClassDesignHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.save)
	router.Get("/:classId", h.get)
	router.Put("/:classId/code", h.saveCode)
	router.Delete("/:classId", h.delete)
}

func (h *ClassDesignHandler) list(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	designs, err := h.service.List(c.Context(), problemID)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", problemID).Msg("failed to list class designs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve class designs")
	}

	return utils.SendSuccess(c, "class designs retrieved", designs)
}

func (h *ClassDesignHandler) save(c *fiber.Ctx) error {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ClassDesignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	design, err := h.service.Save(c.Context(), problemID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrProblemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "problem not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("problem_id", problemID).Msg("failed to save class design")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save class design")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "class design saved", design)
}

func (h *ClassDesignHandler) get(c *fiber.Ctx) error {
	problemID, classID, err := h.ids(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	design, err := h.service.Get(c.Context(), problemID, classID)
	if err != nil {
		return h.notFoundOrInternal(c, err, classID, "failed to retrieve class design")
	}

	return utils.SendSuccess(c, "class design retrieved", design)
}

func (h *ClassDesignHandler) saveCode(c *fiber.Ctx) error {
	problemID, classID, err := h.ids(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ClassCodeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	design, err := h.service.SaveCode(c.Context(), problemID, classID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.notFoundOrInternal(c, err, classID, "failed to save class code")
	}

	return utils.SendSuccess(c, "class code saved", design)
}

func (h *ClassDesignHandler) delete(c *fiber.Ctx) error {
	problemID, classID, err := h.ids(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), problemID, classID); err != nil {
		return h.notFoundOrInternal(c, err, classID, "failed to delete class design")
	}

	return utils.SendSuccess(c, "class design deleted", nil)
}

func (h *ClassDesignHandler) ids(c *fiber.Ctx) (uint, uint, error) {
	problemID, err := parseUintParam(c, "problemId")
	if err != nil {
		return 0, 0, err
	}
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return 0, 0, err
	}
	return problemID, classID, nil
}

func (h *ClassDesignHandler) notFoundOrInternal(c *fiber.Ctx, err error, classID uint, message string) error {
	if errors.Is(err, service.ErrProblemNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "problem not found")
	}
	if errors.Is(err, service.ErrClassDesignNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "class design not found")
	}
	requestLogger(h.logger, c).Error().Err(err).Uint("class_id", classID).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
