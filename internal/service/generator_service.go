package service

import (
	"context"

	"tinfoil/internal/generator"
	"tinfoil/internal/middleware"
	"tinfoil/internal/models"
	"tinfoil/internal/repository"
)

// GeneratorService wraps the theory generator and keeps an audit record of
// every invocation.
type GeneratorService struct {
	gen           *generator.Generator
	generatedRepo repository.GeneratedTheoryRepository
}

func NewGeneratorService(gen *generator.Generator, generatedRepo repository.GeneratedTheoryRepository) *GeneratorService {
	return &GeneratorService{
		gen:           gen,
		generatedRepo: generatedRepo,
	}
}

// Generate produces a theory candidate from comma-separated keywords and
// records the prompt and output. The candidate itself is not saved as a
// Theory; the caller decides whether to post it.
func (s *GeneratorService) Generate(ctx context.Context, keywordsInput string, userID *uint) (*generator.Candidate, error) {
	candidate, err := s.gen.Generate(keywordsInput)
	if err != nil {
		middleware.TheoriesGenerated.WithLabelValues("rejected").Inc()
		return nil, err
	}

	entry := &models.GeneratedTheory{
		Prompt:        keywordsInput,
		GeneratedText: candidate.Content,
		UserID:        userID,
	}
	if err := s.generatedRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	middleware.TheoriesGenerated.WithLabelValues("generated").Inc()
	return candidate, nil
}

// ListGenerated returns the generator audit trail, newest first.
func (s *GeneratorService) ListGenerated(ctx context.Context, limit, offset int) ([]*models.GeneratedTheory, error) {
	return s.generatedRepo.List(ctx, limit, offset)
}

// GetUserGenerated returns one user's generator history.
func (s *GeneratorService) GetUserGenerated(ctx context.Context, userID uint, limit, offset int) ([]*models.GeneratedTheory, error) {
	return s.generatedRepo.GetByUserID(ctx, userID, limit, offset)
}
