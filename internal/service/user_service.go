package service

import (
	"context"
	"strings"

	"tinfoil/internal/middleware"
	"tinfoil/internal/models"
	"tinfoil/internal/repository"
	"tinfoil/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateUserInput struct {
	ActorID  uint
	UserID   uint
	Username string
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository, activityRepo repository.ActivityLogRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
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

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, "register")
	return user, nil
}

// Login verifies credentials and returns the user. The caller issues the
// session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	s.logActivity(ctx, user.ID, "login")
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ActorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own account")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(in.Username); username != "" {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = username
	}
	if in.Email != "" {
		email := strings.TrimSpace(strings.ToLower(in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logActivity(ctx, user.ID, "profile_update")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	if actorID != userID {
		return models.NewUnauthorizedError("You can only delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logActivity(ctx, userID, "account_delete")
	return nil
}

// logActivity appends to the audit trail. Failures are logged and dropped:
// the audit trail never blocks the action it records.
func (s *UserService) logActivity(ctx context.Context, userID uint, action string) {
	if s.activityRepo == nil {
		return
	}
	entry := &models.ActivityLog{UserID: userID, Action: action}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record activity",
			"action", action,
			"error", err,
		)
	}
}
