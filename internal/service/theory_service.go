// Package service contains the business logic for the application.
package service

import (
	"context"
	"strings"

	"tinfoil/internal/cache"
	"tinfoil/internal/models"
	"tinfoil/internal/repository"
)

type TheoryService struct {
	theoryRepo repository.TheoryRepository
	tagRepo    repository.TagRepository
}

type CreateTheoryInput struct {
	UserID  uint
	Title   string
	Content string
	Tags    []string
}

type UpdateTheoryInput struct {
	UserID   uint
	TheoryID uint
	Title    string
	Content  string
	// Tags replaces the theory's tag list when non-nil. An empty non-nil
	// slice clears it.
	Tags []string
}

type DeleteTheoryInput struct {
	UserID   uint
	TheoryID uint
}

func NewTheoryService(theoryRepo repository.TheoryRepository, tagRepo repository.TagRepository) *TheoryService {
	return &TheoryService{
		theoryRepo: theoryRepo,
		tagRepo:    tagRepo,
	}
}

const (
	maxTitleLen   = 300
	maxContentLen = 10000
	maxTags       = 25

	// defaultListLimit is the page size of the browse listing. Only this
	// exact page is cached; every cached shape shares one Redis key.
	defaultListLimit = 20
)

func (s *TheoryService) CreateTheory(ctx context.Context, in CreateTheoryInput) (*models.Theory, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	tagIDs, err := s.reconcileTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	userID := in.UserID
	theory := &models.Theory{
		Title:       in.Title,
		Content:     in.Content,
		CreatedByID: &userID,
	}
	if err := s.theoryRepo.Create(ctx, theory, dedupeIDs(tagIDs)); err != nil {
		return nil, err
	}
	return s.theoryRepo.GetByID(ctx, theory.ID)
}

func (s *TheoryService) GetTheory(ctx context.Context, id uint) (*models.Theory, error) {
	return s.theoryRepo.GetByID(ctx, id)
}

func (s *TheoryService) ListTheories(ctx context.Context, limit, offset int) ([]*models.Theory, error) {
	if offset != 0 || limit != defaultListLimit {
		return s.theoryRepo.List(ctx, limit, offset)
	}

	var theories []*models.Theory
	err := cache.Aside(ctx, cache.TheoriesListKey, &theories, cache.ListTTL, func() error {
		var fetchErr error
		theories, fetchErr = s.theoryRepo.List(ctx, limit, offset)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return theories, nil
}

func (s *TheoryService) GetUserTheories(ctx context.Context, userID uint, limit, offset int) ([]*models.Theory, error) {
	return s.theoryRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *TheoryService) UpdateTheory(ctx context.Context, in UpdateTheoryInput) (*models.Theory, error) {
	theory, err := s.theoryRepo.GetByID(ctx, in.TheoryID)
	if err != nil {
		return nil, err
	}

	if theory.CreatedByID == nil || *theory.CreatedByID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own theories")
	}

	if strings.TrimSpace(in.Title) != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		theory.Title = in.Title
	}
	if strings.TrimSpace(in.Content) != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 10000 characters)")
		}
		theory.Content = in.Content
	}

	var tagIDs []uint
	if in.Tags != nil {
		ids, err := s.reconcileTags(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		tagIDs = dedupeIDs(ids)
		if tagIDs == nil {
			tagIDs = []uint{}
		}
	}

	if err := s.theoryRepo.Update(ctx, theory, tagIDs); err != nil {
		return nil, err
	}
	return s.theoryRepo.GetByID(ctx, theory.ID)
}

func (s *TheoryService) DeleteTheory(ctx context.Context, in DeleteTheoryInput) error {
	theory, err := s.theoryRepo.GetByID(ctx, in.TheoryID)
	if err != nil {
		return err
	}

	if theory.CreatedByID == nil || *theory.CreatedByID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own theories")
	}

	return s.theoryRepo.Delete(ctx, in.TheoryID)
}

// reconcileTags maps tag names to IDs, one ID per input name in input order.
// Names are matched exactly after whitespace trimming; unseen names are
// created on the fly. Any storage error aborts the whole submission, so a
// theory is never written with a partial tag list.
func (s *TheoryService) reconcileTags(ctx context.Context, names []string) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, models.NewValidationError("Tag names cannot be blank")
		}
		if len(ids) >= maxTags {
			return nil, models.NewValidationError("Too many tags (max 25)")
		}
		tag, err := s.tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// dedupeIDs drops repeated IDs while keeping first-occurrence order, so a
// submission naming the same tag twice links it once.
func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
