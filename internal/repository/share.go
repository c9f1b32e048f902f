package repository

import (
	"context"

	"tinfoil/internal/models"

	"gorm.io/gorm"
)

type ShareRepository interface {
	Create(ctx context.Context, share *models.Share) error
	GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Share, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Share, error)
}

type shareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.Share) error {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shareRepository) GetByID(ctx context.Context, id uint) (*models.Share, error) {
	var share models.Share
	if err := r.db.WithContext(ctx).First(&share, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Share", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &share, nil
}

func (r *shareRepository) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Share, error) {
	var shares []*models.Share
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("theory_id = ?", theoryID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&shares).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return shares, nil
}

func (r *shareRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, error) {
	var shares []*models.Share
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&shares).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return shares, nil
}

func (r *shareRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Share{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Share", id)
	}
	return nil
}
