package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lld-lab-api/internal/dto"
	"github.com/noah-isme/lld-lab-api/internal/models"
	"github.com/noah-isme/lld-lab-api/internal/repository"
	"github.com/noah-isme/lld-lab-api/pkg/evaluator"
)

// EvaluationService runs design and implementation evaluations for a
// problem's classes and persists the results. Evaluation itself never fails:
// the evaluator absorbs remote failures into heuristic or stub results.
type EvaluationService interface {
	EvaluateClass(ctx context.Context, problemID, classID uint) (dto.EvaluationResponse, error)
	EvaluateProblem(ctx context.Context, problemID uint) ([]dto.EvaluationResponse, error)
	EvaluateImplementations(ctx context.Context, problemID uint) ([]dto.EvaluationResponse, error)
	ListEvaluations(ctx context.Context, problemID uint, kind string) ([]dto.EvaluationResponse, error)
}

// ErrNoImplementations indicates no class in the problem has code attached.
var ErrNoImplementations = errors.New("no class has implementation code")

// ErrUnknownEvaluationKind indicates an unsupported evaluation kind filter.
var ErrUnknownEvaluationKind = errors.New("unknown evaluation kind")

type evaluationService struct {
	problems    repository.ProblemRepository
	designs     repository.ClassDesignRepository
	evaluations repository.EvaluationRepository
	evaluator   *evaluator.Evaluator
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewEvaluationService constructs a new evaluation service. The redis client
// is optional; without it the per-problem evaluation listing is uncached.
func NewEvaluationService(problems repository.ProblemRepository, designs repository.ClassDesignRepository, evaluations repository.EvaluationRepository, eval *evaluator.Evaluator, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		problems:    problems,
		designs:     designs,
		evaluations: evaluations,
		evaluator:   eval,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) EvaluateClass(ctx context.Context, problemID, classID uint) (dto.EvaluationResponse, error) {
	problem, err := s.problems.GetByID(ctx, problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrProblemNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	design, err := s.designs.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrClassDesignNotFound
		}
		return dto.EvaluationResponse{}, err
	}
	if design.ProblemID != problemID {
		return dto.EvaluationResponse{}, ErrClassDesignNotFound
	}

	result := s.evaluator.EvaluateDesign(ctx, design.ToEvaluatorDesign(), problem.Requirements)

	s.persist(ctx, design.ID, models.EvaluationKindDesign, result)
	s.invalidateCache(ctx, problemID)

	return dto.NewEvaluationResponse(design.Name, models.EvaluationKindDesign, result), nil
}

func (s *evaluationService) EvaluateProblem(ctx context.Context, problemID uint) ([]dto.EvaluationResponse, error) {
	problem, designs, err := s.loadProblemDesigns(ctx, problemID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]evaluator.ClassDesign, len(designs))
	for _, design := range designs {
		byName[design.Name] = design.ToEvaluatorDesign()
	}

	results := s.evaluator.EvaluateDesigns(ctx, byName, problem.Requirements)

	responses := make([]dto.EvaluationResponse, 0, len(designs))
	for _, design := range designs {
		result := results[design.Name]
		s.persist(ctx, design.ID, models.EvaluationKindDesign, result)
		responses = append(responses, dto.NewEvaluationResponse(design.Name, models.EvaluationKindDesign, result))
	}

	s.invalidateCache(ctx, problemID)
	return responses, nil
}

func (s *evaluationService) EvaluateImplementations(ctx context.Context, problemID uint) ([]dto.EvaluationResponse, error) {
	problem, designs, err := s.loadProblemDesigns(ctx, problemID)
	if err != nil {
		return nil, err
	}

	codeByName := make(map[string]string)
	implemented := make([]models.ClassDesign, 0, len(designs))
	for _, design := range designs {
		if !design.HasImplementation() {
			continue
		}
		codeByName[design.Name] = design.Code
		implemented = append(implemented, design)
	}

	if len(codeByName) == 0 {
		return nil, ErrNoImplementations
	}

	results := s.evaluator.EvaluateImplementations(ctx, codeByName, problem.Requirements)

	responses := make([]dto.EvaluationResponse, 0, len(implemented))
	for _, design := range implemented {
		result := results[design.Name]
		s.persist(ctx, design.ID, models.EvaluationKindImplementation, result)
		responses = append(responses, dto.NewEvaluationResponse(design.Name, models.EvaluationKindImplementation, result))
	}

	s.invalidateCache(ctx, problemID)
	return responses, nil
}

func (s *evaluationService) ListEvaluations(ctx context.Context, problemID uint, kind string) ([]dto.EvaluationResponse, error) {
	if kind != models.EvaluationKindDesign && kind != models.EvaluationKindImplementation {
		return nil, ErrUnknownEvaluationKind
	}

	cacheKey := s.cacheKey(problemID, kind)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var responses []dto.EvaluationResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Uint("problem_id", problemID).Str("kind", kind).Msg("evaluation cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read evaluation cache")
		}
	}

	_, designs, err := s.loadProblemDesigns(ctx, problemID)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(designs))
	for _, design := range designs {
		nameByID[design.ID] = design.Name
	}

	evaluations, err := s.evaluations.ListByProblem(ctx, problemID, kind)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, dto.NewStoredEvaluationResponse(nameByID[evaluation.ClassDesignID], evaluation))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store evaluation cache")
			}
		}
	}

	return responses, nil
}

func (s *evaluationService) loadProblemDesigns(ctx context.Context, problemID uint) (models.Problem, []models.ClassDesign, error) {
	problem, err := s.problems.GetByID(ctx, problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Problem{}, nil, ErrProblemNotFound
		}
		return models.Problem{}, nil, err
	}

	designs, err := s.designs.ListByProblem(ctx, problemID)
	if err != nil {
		return models.Problem{}, nil, err
	}

	return problem, designs, nil
}

func (s *evaluationService) persist(ctx context.Context, classDesignID uint, kind string, result evaluator.Evaluation) {
	evaluation := models.NewEvaluation(classDesignID, kind, result)
	if err := s.evaluations.Upsert(ctx, &evaluation); err != nil {
		s.logger.Error().Err(err).Uint("class_design_id", classDesignID).Str("kind", kind).Msg("failed to persist evaluation")
	}
}

func (s *evaluationService) cacheKey(problemID uint, kind string) string {
	return fmt.Sprintf("evaluations:problem:%d:%s", problemID, kind)
}

func (s *evaluationService) invalidateCache(ctx context.Context, problemID uint) {
	if s.cache == nil {
		return
	}
	keys := []string{
		s.cacheKey(problemID, models.EvaluationKindDesign),
		s.cacheKey(problemID, models.EvaluationKindImplementation),
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("problem_id", problemID).Msg("failed to invalidate evaluation cache")
	}
}
