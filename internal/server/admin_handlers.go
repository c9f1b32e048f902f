package server

import (
	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListAdmins handles GET /api/admins
func (s *Server) AdminListAdmins(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	admins, err := s.adminService.ListAdmins(c.Context(), currentAdminRole(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if admins == nil {
		admins = []*models.Admin{}
	}
	return c.JSON(fiber.Map{"admins": admins})
}

// AdminCreateAdmin handles POST /api/admins
func (s *Server) AdminCreateAdmin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, err := s.adminService.CreateAdmin(c.Context(), service.CreateAdminInput{
		ActorRole: currentAdminRole(c),
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.AdminRole(req.Role),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"admin": admin})
}

// AdminProfile handles GET /api/admins/profile
func (s *Server) AdminProfile(c *fiber.Ctx) error {
	adminID, _ := c.Locals("adminID").(uint)

	admin, err := s.adminService.GetByID(c.Context(), adminID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"admin": admin})
}

// AdminDeleteAdmin handles DELETE /api/admins/:id
func (s *Server) AdminDeleteAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if actorID, _ := c.Locals("adminID").(uint); actorID == id {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Cannot delete your own account"))
	}

	if err := s.adminService.DeleteAdmin(c.Context(), currentAdminRole(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin deleted successfully"})
}
