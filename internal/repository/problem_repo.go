package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/lld-lab-api/internal/models"
)

// ProblemRepository exposes persistence helpers for design problems.
type ProblemRepository interface {
	Upsert(ctx context.Context, problem *models.Problem) error
	GetByID(ctx context.Context, id uint) (models.Problem, error)
	GetByName(ctx context.Context, name string) (models.Problem, error)
	List(ctx context.Context) ([]models.Problem, error)
	Delete(ctx context.Context, id uint) error
}

// NewProblemRepository constructs a problem repository.
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

type problemRepository struct {
	db *gorm.DB
}

func (r *problemRepository) Upsert(ctx context.Context, problem *models.Problem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"requirements", "updated_at"}),
	}).Create(problem).Error
}

func (r *problemRepository) GetByID(ctx context.Context, id uint) (models.Problem, error) {
	var problem models.Problem
	err := r.db.WithContext(ctx).First(&problem, id).Error
	if err != nil {
		return models.Problem{}, err
	}
	return problem, nil
}

func (r *problemRepository) GetByName(ctx context.Context, name string) (models.Problem, error) {
	var problem models.Problem
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&problem).Error
	if err != nil {
		return models.Problem{}, err
	}
	return problem, nil
}

func (r *problemRepository) List(ctx context.Context) ([]models.Problem, error) {
	var problems []models.Problem
	err := r.db.WithContext(ctx).Order("name").Find(&problems).Error
	return problems, err
}

func (r *problemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Problem{ID: id}).Error
}
