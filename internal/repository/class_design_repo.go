package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/lld-lab-api/internal/models"
)

// ClassDesignRepository exposes persistence helpers for class designs.
type ClassDesignRepository interface {
	Upsert(ctx context.Context, design *models.ClassDesign) error
	GetByID(ctx context.Context, id uint) (models.ClassDesign, error)
	GetByName(ctx context.Context, problemID uint, name string) (models.ClassDesign, error)
	ListByProblem(ctx context.Context, problemID uint) ([]models.ClassDesign, error)
	SaveCode(ctx context.Context, id uint, code string) error
	Delete(ctx context.Context, id uint) error
}

// NewClassDesignRepository constructs a class design repository.
func NewClassDesignRepository(db *gorm.DB) ClassDesignRepository {
	return &classDesignRepository{db: db}
}

type classDesignRepository struct {
	db *gorm.DB
}

func (r *classDesignRepository) Upsert(ctx context.Context, design *models.ClassDesign) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "problem_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"responsibilities", "attributes", "methods", "relationships", "code", "updated_at"}),
	}).Create(design).Error
}

func (r *classDesignRepository) GetByID(ctx context.Context, id uint) (models.ClassDesign, error) {
	var design models.ClassDesign
	err := r.db.WithContext(ctx).
		Preload("Evaluations").
		First(&design, id).Error
	if err != nil {
		return models.ClassDesign{}, err
	}
	return design, nil
}

func (r *classDesignRepository) GetByName(ctx context.Context, problemID uint, name string) (models.ClassDesign, error) {
	var design models.ClassDesign
	err := r.db.WithContext(ctx).
		Where("problem_id = ? AND name = ?", problemID, name).
		First(&design).Error
	if err != nil {
		return models.ClassDesign{}, err
	}
	return design, nil
}

func (r *classDesignRepository) ListByProblem(ctx context.Context, problemID uint) ([]models.ClassDesign, error) {
	var designs []models.ClassDesign
	err := r.db.WithContext(ctx).
		Where("problem_id = ?", problemID).
		Order("name").
		Preload("Evaluations").
		Find(&designs).Error
	return designs, err
}

func (r *classDesignRepository) SaveCode(ctx context.Context, id uint, code string) error {
	return r.db.WithContext(ctx).
		Model(&models.ClassDesign{}).
		Where("id = ?", id).
		Update("code", code).Error
}

func (r *classDesignRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.ClassDesign{ID: id}).Error
}
