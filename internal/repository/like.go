package repository

import (
	"context"

	"tinfoil/internal/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	// Create inserts a like if one does not already exist. It reports whether
	// a row was actually inserted so callers can keep counters honest.
	Create(ctx context.Context, userID, theoryID uint) (bool, error)
	Delete(ctx context.Context, userID, theoryID uint) (bool, error)
	Exists(ctx context.Context, userID, theoryID uint) (bool, error)
	GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Like, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, error)
	CountByTheoryID(ctx context.Context, theoryID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, userID, theoryID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"INSERT INTO likes (user_id, theory_id, created_at) VALUES (?, ?, NOW()) ON CONFLICT (user_id, theory_id) DO NOTHING",
		userID, theoryID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, theoryID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND theory_id = ?", userID, theoryID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, theoryID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND theory_id = ?", userID, theoryID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Like, error) {
	var likes []*models.Like
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("theory_id = ?", theoryID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, error) {
	var likes []*models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) CountByTheoryID(ctx context.Context, theoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("theory_id = ?", theoryID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
