package server

import (
	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetTheories handles GET /api/theories
func (s *Server) GetTheories(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	theories, err := s.theoryService.ListTheories(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if theories == nil {
		theories = []*models.Theory{}
	}
	return c.JSON(fiber.Map{"theories": theories})
}

// GetTheory handles GET /api/theories/:id
func (s *Server) GetTheory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	theory, err := s.theoryService.GetTheory(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"theory": theory})
}

// CreateTheory handles POST /api/theories
func (s *Server) CreateTheory(c *fiber.Ctx) error {
	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	theory, err := s.theoryService.CreateTheory(c.Context(), service.CreateTheoryInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"theory": theory})
}

// UpdateTheory handles PUT /api/theories/:id
func (s *Server) UpdateTheory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	theory, err := s.theoryService.UpdateTheory(c.Context(), service.UpdateTheoryInput{
		UserID:   currentUserID(c),
		TheoryID: id,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"theory": theory})
}

// DeleteTheory handles DELETE /api/theories/:id
func (s *Server) DeleteTheory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.theoryService.DeleteTheory(c.Context(), service.DeleteTheoryInput{
		UserID:   currentUserID(c),
		TheoryID: id,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Theory deleted"})
}

// AdminGetUserTheories handles GET /api/theories/by-user/:userId
func (s *Server) AdminGetUserTheories(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	theories, err := s.theoryService.GetUserTheories(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if theories == nil {
		theories = []*models.Theory{}
	}
	return c.JSON(fiber.Map{"theories": theories})
}
