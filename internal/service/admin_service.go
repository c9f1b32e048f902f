package service

import (
	"context"
	"strings"

	"tinfoil/internal/models"
	"tinfoil/internal/repository"
	"tinfoil/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AdminService handles staff accounts. Admins are a separate table from
// users and never own theories; they get read and moderation paths only.
type AdminService struct {
	adminRepo    repository.AdminRepository
	activityRepo repository.ActivityLogRepository
}

type CreateAdminInput struct {
	// ActorRole is the role of the admin making the request.
	ActorRole models.AdminRole
	Username  string
	Email     string
	Password  string
	Role      models.AdminRole
}

func NewAdminService(adminRepo repository.AdminRepository, activityRepo repository.ActivityLogRepository) *AdminService {
	return &AdminService{
		adminRepo:    adminRepo,
		activityRepo: activityRepo,
	}
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return admin, nil
}

func (s *AdminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

func (s *AdminService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.Admin, error) {
	if !in.ActorRole.CanManageAdmins() {
		return nil, models.NewUnauthorizedError("Only superadmins can create admin accounts")
	}
	if !in.Role.Valid() {
		return nil, models.NewValidationError("Role must be moderator or superadmin")
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	admin := &models.Admin{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ListAdmins(ctx context.Context, actorRole models.AdminRole, limit, offset int) ([]*models.Admin, error) {
	if !actorRole.CanManageAdmins() {
		return nil, models.NewUnauthorizedError("Only superadmins can list admin accounts")
	}
	return s.adminRepo.List(ctx, limit, offset)
}

func (s *AdminService) DeleteAdmin(ctx context.Context, actorRole models.AdminRole, id uint) error {
	if !actorRole.CanManageAdmins() {
		return models.NewUnauthorizedError("Only superadmins can delete admin accounts")
	}
	return s.adminRepo.Delete(ctx, id)
}

// GetUserActivity exposes the audit trail to moderators.
func (s *AdminService) GetUserActivity(ctx context.Context, userID uint, limit, offset int) ([]*models.ActivityLog, error) {
	return s.activityRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *AdminService) ListActivity(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	return s.activityRepo.List(ctx, limit, offset)
}
