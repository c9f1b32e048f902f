package service

import (
	"context"
	"strings"

	"tinfoil/internal/models"
	"tinfoil/internal/repository"
)

type ReportService struct {
	reportRepo repository.ReportRepository
	theoryRepo repository.TheoryRepository
}

type CreateReportInput struct {
	UserID   uint
	TheoryID uint
	Reason   string
}

func NewReportService(reportRepo repository.ReportRepository, theoryRepo repository.TheoryRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		theoryRepo: theoryRepo,
	}
}

const maxReasonLen = 1000

func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(reason) > maxReasonLen {
		return nil, models.NewValidationError("Reason too long (max 1000 characters)")
	}
	if _, err := s.theoryRepo.GetByID(ctx, in.TheoryID); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportedByID: in.UserID,
		TheoryID:     in.TheoryID,
		Reason:       reason,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	return s.reportRepo.List(ctx, limit, offset)
}

func (s *ReportService) GetTheoryReports(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Report, error) {
	return s.reportRepo.GetByTheoryID(ctx, theoryID, limit, offset)
}

// GetUserReports lists reports filed by one user.
func (s *ReportService) GetUserReports(ctx context.Context, userID uint, limit, offset int) ([]*models.Report, error) {
	return s.reportRepo.GetByUserID(ctx, userID, limit, offset)
}

// DismissReport removes a report once a moderator has reviewed it.
func (s *ReportService) DismissReport(ctx context.Context, id uint) error {
	if _, err := s.reportRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reportRepo.Delete(ctx, id)
}
