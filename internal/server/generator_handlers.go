package server

import (
	"tinfoil/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateTheory handles POST /api/generate. The result is a candidate the
// client can edit and post as a theory; it is not saved as one here.
func (s *Server) GenerateTheory(c *fiber.Ctx) error {
	var req struct {
		Keywords string `json:"keywords"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var userRef *uint
	if userID, ok := s.optionalUserID(c); ok {
		userRef = &userID
	}
	candidate, err := s.generatorService.Generate(c.Context(), req.Keywords, userRef)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"theory": candidate})
}

// AdminListGenerated handles GET /api/generated
func (s *Server) AdminListGenerated(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	entries, err := s.generatorService.ListGenerated(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []*models.GeneratedTheory{}
	}
	return c.JSON(fiber.Map{"generated": entries})
}

// AdminGetUserGenerated handles GET /api/generated/by-user/:userId
func (s *Server) AdminGetUserGenerated(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	entries, err := s.generatorService.GetUserGenerated(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []*models.GeneratedTheory{}
	}
	return c.JSON(fiber.Map{"generated": entries})
}
