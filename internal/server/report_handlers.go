package server

import (
	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TheoryID uint   `json:"theory_id"`
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TheoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("theory_id is required"))
	}

	report, err := s.reportService.CreateReport(c.Context(), service.CreateReportInput{
		UserID:   currentUserID(c),
		TheoryID: req.TheoryID,
		Reason:   req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

// GetMyReports handles GET /api/reports
func (s *Server) GetMyReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	reports, err := s.reportService.GetUserReports(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// AdminListReports handles GET /api/moderation/reports
func (s *Server) AdminListReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	reports, err := s.reportService.ListReports(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// AdminDismissReport handles DELETE /api/moderation/reports/:id
func (s *Server) AdminDismissReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !currentAdminRole(c).CanModerate() {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Moderation access required"))
	}

	if err := s.reportService.DismissReport(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report dismissed"})
}

// AdminGetUserReports handles GET /api/reports/by-user/:userId
func (s *Server) AdminGetUserReports(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	reports, err := s.reportService.GetUserReports(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// AdminGetTheoryReports handles GET /api/moderation/theories/:id/reports
func (s *Server) AdminGetTheoryReports(c *fiber.Ctx) error {
	theoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	reports, err := s.reportService.GetTheoryReports(c.Context(), theoryID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// AdminListActivity handles GET /api/moderation/activity
func (s *Server) AdminListActivity(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	entries, err := s.adminService.ListActivity(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []*models.ActivityLog{}
	}
	return c.JSON(fiber.Map{"activity_logs": entries})
}

// GetMyActivity handles GET /api/activity-logs
func (s *Server) GetMyActivity(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	entries, err := s.activityRepo.GetByUserID(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []*models.ActivityLog{}
	}
	return c.JSON(fiber.Map{"activity_logs": entries})
}

// AdminGetUserActivity handles GET /api/activity-logs/by-user/:userId
func (s *Server) AdminGetUserActivity(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	entries, err := s.adminService.GetUserActivity(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []*models.ActivityLog{}
	}
	return c.JSON(fiber.Map{"activity_logs": entries})
}
