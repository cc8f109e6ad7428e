package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/lld-lab-api/internal/models"
)

// EvaluationRepository exposes persistence helpers for evaluation results.
type EvaluationRepository interface {
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	ListByProblem(ctx context.Context, problemID uint, kind string) ([]models.Evaluation, error)
}

// NewEvaluationRepository constructs an evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

type evaluationRepository struct {
	db *gorm.DB
}

func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_design_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"overall_score", "feedback", "suggestions", "design_patterns", "updated_at"}),
	}).Create(evaluation).Error
}

func (r *evaluationRepository) ListByProblem(ctx context.Context, problemID uint, kind string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	err := r.db.WithContext(ctx).
		Joins("JOIN class_designs ON class_designs.id = evaluations.class_design_id").
		Where("class_designs.problem_id = ? AND evaluations.kind = ?", problemID, kind).
		Find(&evaluations).Error
	return evaluations, err
}
