package service

import (
	"context"
	"strings"

	"tinfoil/internal/models"
	"tinfoil/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	theoryRepo  repository.TheoryRepository
}

type CreateCommentInput struct {
	UserID   uint
	TheoryID uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, theoryRepo repository.TheoryRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		theoryRepo:  theoryRepo,
	}
}

const maxCommentLen = 5000

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}
	if _, err := s.theoryRepo.GetByID(ctx, in.TheoryID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		TheoryID: in.TheoryID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) GetTheoryComments(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.GetByTheoryID(ctx, theoryID, limit, offset)
}

func (s *CommentService) GetUserComments(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. isAdmin lets moderators remove any
// comment; everyone else is limited to their own.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
