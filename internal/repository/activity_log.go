package repository

import (
	"context"

	"tinfoil/internal/models"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activityLogRepository) List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	var entries []*models.ActivityLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *activityLogRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.ActivityLog, error) {
	var entries []*models.ActivityLog
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
