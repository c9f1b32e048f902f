package repository

import (
	"context"
	"errors"

	"tinfoil/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	List(ctx context.Context, limit, offset int) ([]*models.Report, error)
	GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Report, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Report, error)
	Delete(ctx context.Context, id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).
		Preload("ReportedBy").
		First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	var reports []*models.Report
	if err := r.db.WithContext(ctx).
		Preload("ReportedBy").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Report, error) {
	var reports []*models.Report
	if err := r.db.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Report, error) {
	var reports []*models.Report
	if err := r.db.WithContext(ctx).
		Where("reported_by_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}


func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Report", id)
	}
	return nil
}
