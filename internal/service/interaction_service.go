package service

import (
	"context"
	"strings"

	"tinfoil/internal/models"
	"tinfoil/internal/repository"
)

// InteractionService handles likes and shares. Both keep the denormalized
// counters on Theory in step with the underlying rows.
type InteractionService struct {
	likeRepo   repository.LikeRepository
	shareRepo  repository.ShareRepository
	theoryRepo repository.TheoryRepository
}

func NewInteractionService(
	likeRepo repository.LikeRepository,
	shareRepo repository.ShareRepository,
	theoryRepo repository.TheoryRepository,
) *InteractionService {
	return &InteractionService{
		likeRepo:   likeRepo,
		shareRepo:  shareRepo,
		theoryRepo: theoryRepo,
	}
}

// LikeTheory records a like. Liking twice is a no-op, not an error, and the
// counter only moves when a row was actually inserted.
func (s *InteractionService) LikeTheory(ctx context.Context, userID, theoryID uint) error {
	if _, err := s.theoryRepo.GetByID(ctx, theoryID); err != nil {
		return err
	}

	inserted, err := s.likeRepo.Create(ctx, userID, theoryID)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return s.theoryRepo.IncrementLikes(ctx, theoryID, 1)
}

func (s *InteractionService) UnlikeTheory(ctx context.Context, userID, theoryID uint) error {
	deleted, err := s.likeRepo.Delete(ctx, userID, theoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Like", theoryID)
	}
	return s.theoryRepo.IncrementLikes(ctx, theoryID, -1)
}

// HasLiked reports whether the user has liked the theory.
func (s *InteractionService) HasLiked(ctx context.Context, userID, theoryID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, theoryID)
}

func (s *InteractionService) GetUserLikes(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, error) {
	return s.likeRepo.GetByUserID(ctx, userID, limit, offset)
}

// GetTheoryLikes returns a page of likes for a theory along with the total,
// counted from the rows rather than the denormalized counter.
func (s *InteractionService) GetTheoryLikes(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Like, int64, error) {
	likes, err := s.likeRepo.GetByTheoryID(ctx, theoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.likeRepo.CountByTheoryID(ctx, theoryID)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// ShareTheory records a share to an external platform and bumps the counter.
func (s *InteractionService) ShareTheory(ctx context.Context, userID, theoryID uint, sharedTo string) (*models.Share, error) {
	sharedTo = strings.TrimSpace(sharedTo)
	if sharedTo == "" {
		return nil, models.NewValidationError("shared_to is required")
	}
	if _, err := s.theoryRepo.GetByID(ctx, theoryID); err != nil {
		return nil, err
	}

	share := &models.Share{
		UserID:   userID,
		TheoryID: theoryID,
		SharedTo: sharedTo,
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}
	if err := s.theoryRepo.IncrementShares(ctx, theoryID, 1); err != nil {
		return nil, err
	}
	return share, nil
}

// DeleteShare removes a share record. Only the user who shared may remove it.
func (s *InteractionService) DeleteShare(ctx context.Context, userID, shareID uint) error {
	share, err := s.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share.UserID != userID {
		return models.NewUnauthorizedError("You can only remove your own shares")
	}
	if err := s.shareRepo.Delete(ctx, shareID); err != nil {
		return err
	}
	return s.theoryRepo.IncrementShares(ctx, share.TheoryID, -1)
}

func (s *InteractionService) GetTheoryShares(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Share, error) {
	return s.shareRepo.GetByTheoryID(ctx, theoryID, limit, offset)
}

func (s *InteractionService) GetUserShares(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, error) {
	return s.shareRepo.GetByUserID(ctx, userID, limit, offset)
}
