package server

import (
	"fmt"
	"strconv"
	"time"

	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "tinfoil_session"
	adminCookieName   = "tinfoil_admin_session"
	tokenLifetime     = 7 * 24 * time.Hour
)

// Register handles POST /api/users/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, sessionCookieName, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/users/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, sessionCookieName, token)

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/users/logout. The session cookie is cleared and
// the token's JTI is blacklisted until it would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Cookies(sessionCookieName)
	}

	if tokenString != "" && s.redis != nil {
		if claims, err := s.parseClaims(tokenString, audienceClient); err == nil {
			s.blacklistToken(c, claims)
		}
	}

	s.clearSessionCookie(c, sessionCookieName)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// AdminLogin handles POST /api/admins/login
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, err := s.adminService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateAdminToken(admin.ID, admin.Role)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, adminCookieName, token)

	return c.JSON(fiber.Map{
		"token": token,
		"admin": admin,
	})
}

// GetProfile handles GET /api/users/profile. A fresh cookie is issued so an
// active session keeps sliding forward.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err == nil {
		s.setSessionCookie(c, sessionCookieName, token)
	}

	return c.JSON(fiber.Map{"user": user})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	return s.signToken(jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"aud":      audienceClient,
	})
}

// generateAdminToken creates a staff JWT carrying the admin's role.
func (s *Server) generateAdminToken(adminID uint, role models.AdminRole) (string, error) {
	return s.signToken(jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(adminID), 10),
		"role": string(role),
		"aud":  audienceAdmin,
	})
}

func (s *Server) signToken(claims jwt.MapClaims) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims["iss"] = tokenIssuer
	claims["exp"] = now.Add(tokenLifetime).Unix()
	claims["iat"] = now.Unix()
	claims["nbf"] = now.Unix()
	claims["jti"] = s.generateJTI()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// blacklistToken records the token's JTI in Redis until the token expires.
func (s *Server) blacklistToken(c *fiber.Ctx, claims jwt.MapClaims) {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return
	}

	ttl := tokenLifetime
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, name, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
