package repository

import (
	"context"

	"tinfoil/internal/models"

	"gorm.io/gorm"
)

type GeneratedTheoryRepository interface {
	Create(ctx context.Context, generated *models.GeneratedTheory) error
	List(ctx context.Context, limit, offset int) ([]*models.GeneratedTheory, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.GeneratedTheory, error)
}

type generatedTheoryRepository struct {
	db *gorm.DB
}

func NewGeneratedTheoryRepository(db *gorm.DB) GeneratedTheoryRepository {
	return &generatedTheoryRepository{db: db}
}

func (r *generatedTheoryRepository) Create(ctx context.Context, generated *models.GeneratedTheory) error {
	if err := r.db.WithContext(ctx).Create(generated).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *generatedTheoryRepository) List(ctx context.Context, limit, offset int) ([]*models.GeneratedTheory, error) {
	var entries []*models.GeneratedTheory
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *generatedTheoryRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.GeneratedTheory, error) {
	var entries []*models.GeneratedTheory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
