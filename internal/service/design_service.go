package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/internal/repository"
)

// DesignService exposes class design operations within a problem.
type DesignService interface {
	Save(ctx context.Context, problemID uint, payload dto.ClassDesignRequest) (dto.ClassDesignResponse, error)
	Get(ctx context.Context, problemID, classID uint) (dto.ClassDesignResponse, error)
	List(ctx context.Context, problemID uint) ([]dto.ClassDesignResponse, error)
	SaveCode(ctx context.Context, problemID, classID uint, payload dto.ClassCodeRequest) (dto.ClassDesignResponse, error)
	Delete(ctx context.Context, problemID, classID uint) error
}

// ErrClassDesignNotFound indicates the class design cannot be located.
var ErrClassDesignNotFound = errors.New("class design not found")

type designService struct {
	problems  repository.ProblemRepository
	designs   repository.ClassDesignRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDesignService constructs a new design service.
func NewDesignService(problems repository.ProblemRepository, designs repository.ClassDesignRepository, validate *validator.Validate, logger zerolog.Logger) DesignService {
	return &designService{
		problems:  problems,
		designs:   designs,
		validator: validate,
		logger:    logger.With().Str("component", "design_service").Logger(),
	}
}

func (s *designService) Save(ctx context.Context, problemID uint, payload dto.ClassDesignRequest) (dto.ClassDesignResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassDesignResponse{}, err
	}

	if _, err := s.problems.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassDesignResponse{}, ErrProblemNotFound
		}
		return dto.ClassDesignResponse{}, err
	}

	name := strings.TrimSpace(payload.Name)

	// Resaving a class keeps any code it already carries.
	code := ""
	if existing, err := s.designs.GetByName(ctx, problemID, name); err == nil {
		code = existing.Code
	}

	design := models.ClassDesign{
		ProblemID:        problemID,
		Name:             name,
		Responsibilities: models.StringList(trimNonEmpty(payload.Responsibilities)),
		Attributes:       models.StringList(trimNonEmpty(payload.Attributes)),
		Methods:          models.StringList(trimNonEmpty(payload.Methods)),
		Relationships:    models.StringList(trimNonEmpty(payload.Relationships)),
		Code:             code,
	}

	if err := s.designs.Upsert(ctx, &design); err != nil {
		return dto.ClassDesignResponse{}, err
	}

	stored, err := s.designs.GetByName(ctx, problemID, name)
	if err != nil {
		return dto.ClassDesignResponse{}, err
	}

	return dto.NewClassDesignResponse(stored), nil
}

func (s *designService) Get(ctx context.Context, problemID, classID uint) (dto.ClassDesignResponse, error) {
	design, err := s.getOwned(ctx, problemID, classID)
	if err != nil {
		return dto.ClassDesignResponse{}, err
	}
	return dto.NewClassDesignResponse(design), nil
}

func (s *designService) List(ctx context.Context, problemID uint) ([]dto.ClassDesignResponse, error) {
	if _, err := s.problems.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, err
	}

	designs, err := s.designs.ListByProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClassDesignResponse, 0, len(designs))
	for _, design := range designs {
		responses = append(responses, dto.NewClassDesignResponse(design))
	}
	return responses, nil
}

func (s *designService) SaveCode(ctx context.Context, problemID, classID uint, payload dto.ClassCodeRequest) (dto.ClassDesignResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassDesignResponse{}, err
	}

	design, err := s.getOwned(ctx, problemID, classID)
	if err != nil {
		return dto.ClassDesignResponse{}, err
	}

	if err := s.designs.SaveCode(ctx, design.ID, payload.Code); err != nil {
		return dto.ClassDesignResponse{}, err
	}

	design.Code = payload.Code
	return dto.NewClassDesignResponse(design), nil
}

func (s *designService) Delete(ctx context.Context, problemID, classID uint) error {
	design, err := s.getOwned(ctx, problemID, classID)
	if err != nil {
		return err
	}
	return s.designs.Delete(ctx, design.ID)
}

func (s *designService) getOwned(ctx context.Context, problemID, classID uint) (models.ClassDesign, error) {
	design, err := s.designs.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ClassDesign{}, ErrClassDesignNotFound
		}
		return models.ClassDesign{}, err
	}
	if design.ProblemID != problemID {
		return models.ClassDesign{}, ErrClassDesignNotFound
	}
	return design, nil
}

func trimNonEmpty(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			trimmed = append(trimmed, value)
		}
	}
	return trimmed
}
