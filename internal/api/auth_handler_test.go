package api

import (
	"net/http"
	"testing"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testUser() *domain.User {
	return &domain.User{
		ID:            testUserID,
		Email:         "lifter@example.com",
		Username:      "lifter",
		PasswordHash:  "secret-hash",
		FullName:      "Test Lifter",
		TrainingLevel: domain.LevelIntermediate,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	valid := RegisterRequest{
		Email:         "lifter@example.com",
		Username:      "lifter",
		Password:      "password123",
		TrainingLevel: domain.LevelIntermediate,
	}
	wantInput := service.RegisterInput{
		Email:         "lifter@example.com",
		Username:      "lifter",
		Password:      "password123",
		TrainingLevel: domain.LevelIntermediate,
	}

	tests := []struct {
		name       string
		body       any
		serviceErr error
		callsSvc   bool
		wantStatus int
	}{
		{name: "created", body: valid, callsSvc: true, wantStatus: http.StatusCreated},
		{name: "duplicate", body: valid, callsSvc: true, serviceErr: service.ErrUserAlreadyExists, wantStatus: http.StatusConflict},
		{name: "malformed json", body: "{not json", wantStatus: http.StatusBadRequest},
		{name: "bad email", body: RegisterRequest{Email: "nope", Username: "lifter", Password: "password123"}, wantStatus: http.StatusBadRequest},
		{name: "short password", body: RegisterRequest{Email: "a@b.com", Username: "lifter", Password: "short"}, wantStatus: http.StatusBadRequest},
		{name: "unknown level", body: RegisterRequest{Email: "a@b.com", Username: "lifter", Password: "password123", TrainingLevel: "godlike"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, s := newTestServer(t)
			if tt.callsSvc {
				var user *domain.User
				if tt.serviceErr == nil {
					user = testUser()
				}
				s.auth.On("Register", mock.Anything, wantInput).Return(user, tt.serviceErr).Once()
			}

			rec := doWithToken(t, router, http.MethodPost, "/api/v1/auth/register", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusCreated {
				body := decode(t, rec)
				assert.Equal(t, "lifter@example.com", body["email"])
				assert.Equal(t, "intermediate", body["trainingLevel"])
				assert.NotContains(t, body, "passwordHash")
				assert.NotContains(t, rec.Body.String(), "secret-hash")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, s := newTestServer(t)
		s.auth.On("Login", mock.Anything, "lifter@example.com", "password123").Return("jwt-token", testUser(), nil).Once()
		s.auth.On("TokenTTL").Return(24 * time.Hour).Once()

		rec := doWithToken(t, router, http.MethodPost, "/api/v1/auth/login",
			LoginRequest{Email: "lifter@example.com", Password: "password123"}, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "jwt-token", body["accessToken"])
		assert.Equal(t, "bearer", body["tokenType"])
		assert.Equal(t, float64(1440), body["expiresIn"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		router, s := newTestServer(t)
		s.auth.On("Login", mock.Anything, "lifter@example.com", "wrong").Return("", nil, service.ErrAuthenticationFailed).Once()

		rec := doWithToken(t, router, http.MethodPost, "/api/v1/auth/login",
			LoginRequest{Email: "lifter@example.com", Password: "wrong"}, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, service.ErrAuthenticationFailed.Error(), decode(t, rec)["error"])
	})
}

func TestGetMe(t *testing.T) {
	router, s := newTestServer(t)
	s.users.On("GetProfile", mock.Anything, testUserID).Return(testUser(), nil).Once()

	rec := do(t, router, http.MethodGet, "/api/v1/users/me", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUserID, decode(t, rec)["id"])
}

func TestUpdateMe(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		router, s := newTestServer(t)
		updated := testUser()
		updated.TrainingLevel = domain.LevelAdvanced
		s.users.On("UpdateProfile", mock.Anything, testUserID, mock.MatchedBy(func(in service.ProfileUpdate) bool {
			return in.FullName == nil && in.TrainingLevel != nil && *in.TrainingLevel == domain.LevelAdvanced
		})).Return(updated, nil).Once()

		rec := do(t, router, http.MethodPut, "/api/v1/users/me", map[string]any{"trainingLevel": "advanced"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "advanced", decode(t, rec)["trainingLevel"])
	})

	t.Run("unknown level", func(t *testing.T) {
		router, _ := newTestServer(t)
		rec := do(t, router, http.MethodPut, "/api/v1/users/me", map[string]any{"trainingLevel": "godlike"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
