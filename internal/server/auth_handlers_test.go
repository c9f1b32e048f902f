package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestServer(users *MockUserRepository) *Server {
	activity := new(MockActivityLogRepository)
	activity.On("Create", mock.Anything, mock.Anything).Return(nil)

	s := &Server{config: testConfig(), userRepo: users}
	s.userService = service.NewUserService(users, activity)
	return s
}

func TestRegister(t *testing.T) {
	users := new(MockUserRepository)
	s := newAuthTestServer(users)

	app := fiber.New()
	app.Post("/register", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "deepthroat",
				"email":    "dt@example.com",
				"password": "Sup3rSecret!pass",
			},
			mockSetup: func() {
				users.On("GetByEmail", mock.Anything, "dt@example.com").Return(nil, nil).Once()
				users.On("GetByUsername", mock.Anything, "deepthroat").Return(nil, nil).Once()
				users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"username": "deepthroat",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "deepthroat",
				"email":    "dt@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "deepthroat",
				"email":    "dt@example.com",
				"password": "Sup3rSecret!pass",
			},
			mockSetup: func() {
				users.On("GetByEmail", mock.Anything, "dt@example.com").Return(&models.User{ID: 1}, nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret!pass"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "dt@example.com").
		Return(&models.User{ID: 1, Username: "deepthroat", Email: "dt@example.com", Password: string(hash)}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	s := newAuthTestServer(users)
	app := fiber.New()
	app.Post("/login", s.Login)

	t.Run("Success issues token and cookie", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "dt@example.com", "password": "Sup3rSecret!pass"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "deepthroat", out.User.Username)

		var sawCookie bool
		for _, c := range resp.Cookies() {
			if c.Name == sessionCookieName {
				sawCookie = true
				assert.True(t, c.HttpOnly)
				assert.Equal(t, out.Token, c.Value)
			}
		}
		assert.True(t, sawCookie, "login must set the session cookie")
	})

	t.Run("Wrong password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "dt@example.com", "password": "nope"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown email", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "ghost@example.com", "password": "whatever"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	s := &Server{config: testConfig()}

	app := fiber.New()
	app.Get("/whoami", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})

	token, err := s.generateToken(42, "deepthroat")
	require.NoError(t, err)

	t.Run("Bearer token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			UserID uint `json:"user_id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, uint(42), out.UserID)
	})

	t.Run("Cookie accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Admin token rejected on user routes", func(t *testing.T) {
		adminToken, err := s.generateAdminToken(1, models.AdminRoleSuperadmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
