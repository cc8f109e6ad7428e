package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/internal/repository"
)

// ProblemService exposes design problem operations.
type ProblemService interface {
	Save(ctx context.Context, payload dto.ProblemRequest) (dto.ProblemResponse, error)
	Get(ctx context.Context, id uint) (dto.ProblemResponse, error)
	List(ctx context.Context) ([]dto.ProblemResponse, error)
	Delete(ctx context.Context, id uint) error
}

// ErrProblemNotFound indicates the problem cannot be located.
var ErrProblemNotFound = errors.New("problem not found")

type problemService struct {
	problems  repository.ProblemRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProblemService constructs a new problem service. Requirements text is
// rendered back to users, so it is sanitised with a UGC policy on save.
func NewProblemService(problems repository.ProblemRepository, validate *validator.Validate, logger zerolog.Logger) ProblemService {
	return &problemService{
		problems:  problems,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "problem_service").Logger(),
	}
}

func (s *problemService) Save(ctx context.Context, payload dto.ProblemRequest) (dto.ProblemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemResponse{}, err
	}

	problem := models.Problem{
		Name:         strings.TrimSpace(payload.Name),
		Requirements: s.sanitizer.Sanitize(strings.TrimSpace(payload.Requirements)),
	}

	if err := s.problems.Upsert(ctx, &problem); err != nil {
		return dto.ProblemResponse{}, err
	}

	// The upsert does not report the surviving row id on conflict; re-read.
	stored, err := s.problems.GetByName(ctx, problem.Name)
	if err != nil {
		return dto.ProblemResponse{}, err
	}

	return dto.NewProblemResponse(stored), nil
}

func (s *problemService) Get(ctx context.Context, id uint) (dto.ProblemResponse, error) {
	problem, err := s.problems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProblemResponse{}, ErrProblemNotFound
		}
		return dto.ProblemResponse{}, err
	}

	return dto.NewProblemResponse(problem), nil
}

func (s *problemService) List(ctx context.Context) ([]dto.ProblemResponse, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProblemResponse, 0, len(problems))
	for _, problem := range problems {
		responses = append(responses, dto.NewProblemResponse(problem))
	}
	return responses, nil
}

func (s *problemService) Delete(ctx context.Context, id uint) error {
	if _, err := s.problems.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProblemNotFound
		}
		return err
	}
	return s.problems.Delete(ctx, id)
}
