package server

import (
	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTheoryComments handles GET /api/theories/:id/comments
func (s *Server) GetTheoryComments(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, err := s.commentService.GetTheoryComments(c.Context(), theoryID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// GetMyComments handles GET /api/comments
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	comments, err := s.commentService.GetUserComments(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		TheoryID uint   `json:"theory_id"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TheoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("theory_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   currentUserID(c),
		TheoryID: req.TheoryID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), currentUserID(c), id, false); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// AdminDeleteComment handles DELETE /api/moderation/comments/:id
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !currentAdminRole(c).CanModerate() {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Moderation access required"))
	}

	if err := s.commentService.DeleteComment(c.Context(), 0, id, true); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// AdminGetUserComments handles GET /api/comments/by-user/:userId
func (s *Server) AdminGetUserComments(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, err := s.commentService.GetUserComments(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return c.JSON(fiber.Map{"comments": comments})
}
