package server

import (
	"tinfoil/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTheoryLikes handles GET /api/theories/:id/likes
func (s *Server) GetTheoryLikes(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	likes, total, err := s.interactionService.GetTheoryLikes(c.Context(), theoryID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if likes == nil {
		likes = []*models.Like{}
	}
	return c.JSON(fiber.Map{"likes": likes, "total": total})
}

// GetTheoryShares handles GET /api/theories/:id/shares
func (s *Server) GetTheoryShares(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	shares, err := s.interactionService.GetTheoryShares(c.Context(), theoryID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if shares == nil {
		shares = []*models.Share{}
	}
	return c.JSON(fiber.Map{"shares": shares})
}

// CheckLike handles GET /api/likes/:theoryId
func (s *Server) CheckLike(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "theoryId")
	if err != nil {
		return nil
	}

	liked, err := s.interactionService.HasLiked(c.Context(), currentUserID(c), theoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// LikeTheory handles POST /api/likes
func (s *Server) LikeTheory(c *fiber.Ctx) error {
	var req struct {
		TheoryID uint `json:"theory_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TheoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("theory_id is required"))
	}

	if err := s.interactionService.LikeTheory(c.Context(), currentUserID(c), req.TheoryID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Theory liked"})
}

// UnlikeTheory handles DELETE /api/likes/:theoryId
func (s *Server) UnlikeTheory(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "theoryId")
	if err != nil {
		return nil
	}

	if err := s.interactionService.UnlikeTheory(c.Context(), currentUserID(c), theoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Like removed"})
}

// GetMyLikes handles GET /api/likes
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	likes, err := s.interactionService.GetUserLikes(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if likes == nil {
		likes = []*models.Like{}
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// ShareTheory handles POST /api/shares
func (s *Server) ShareTheory(c *fiber.Ctx) error {
	var req struct {
		TheoryID uint   `json:"theory_id"`
		SharedTo string `json:"shared_to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TheoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("theory_id is required"))
	}

	share, err := s.interactionService.ShareTheory(c.Context(), currentUserID(c), req.TheoryID, req.SharedTo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"share": share})
}

// DeleteShare handles DELETE /api/shares/:id
func (s *Server) DeleteShare(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.interactionService.DeleteShare(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Share removed"})
}

// GetMyShares handles GET /api/shares
func (s *Server) GetMyShares(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	shares, err := s.interactionService.GetUserShares(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if shares == nil {
		shares = []*models.Share{}
	}
	return c.JSON(fiber.Map{"shares": shares})
}
