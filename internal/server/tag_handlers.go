package server

import (
	"strings"

	"tinfoil/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// AdminCreateTag handles POST /api/tags
func (s *Server) AdminCreateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(c.Context(), tag); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tag": tag})
}

// AdminDeleteTag handles DELETE /api/tags/:id
func (s *Server) AdminDeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !currentAdminRole(c).CanModerate() {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Moderation access required"))
	}

	if err := s.tagRepo.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
