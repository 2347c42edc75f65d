package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aerosafe/internal/auth"
	apperrors "aerosafe/internal/errors"
	"aerosafe/internal/model"
	"aerosafe/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, role model.Role, name, email, uid, password, confirmPassword string) (*service.AuthResult, error) {
	args := m.Called(ctx, role, name, email, uid, password, confirmPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, role model.Role) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func adaResult() *service.AuthResult {
	return &service.AuthResult{
		Token: "issued-token",
		Account: &model.Account{
			ID:    uuid.New(),
			Name:  "Ada",
			Email: "ada@x.com",
			Role:  model.RoleAdmin,
			UID:   "AS-ADM-001",
		},
	}
}

func TestAuthHandler_AdminSignup_Success(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("SignUp", mock.Anything, model.RoleAdmin, "Ada", "ada@x.com", "AS-ADM-001", "secret1", "secret1").
		Return(adaResult(), nil)

	h := NewAuthHandler(mockService)
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/admin/signup",
		`{"Name":"Ada","Email":"ada@x.com","AdminId":"AS-ADM-001","Password":"secret1","ConfirmPassword":"secret1"}`)

	require.NoError(t, h.AdminSignup(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "issued-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Admin", resp.User.Role)
	assert.Equal(t, "AS-ADM-001", resp.User.UID)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_PilotSignup_Success(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("SignUp", mock.Anything, model.RolePilot, "Orville", "orville@x.com", "AS-PLT-007", "secret1", "secret1").
		Return(&service.AuthResult{
			Token: "issued-token",
			Account: &model.Account{
				ID:    uuid.New(),
				Name:  "Orville",
				Email: "orville@x.com",
				Role:  model.RolePilot,
				UID:   "AS-PLT-007",
			},
		}, nil)

	h := NewAuthHandler(mockService)
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/pilot/signup",
		`{"Name":"Orville","Email":"orville@x.com","PilotId":"AS-PLT-007","Password":"secret1","ConfirmPassword":"secret1"}`)

	require.NoError(t, h.PilotSignup(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Pilot", resp.User.Role)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_AdminSignup_Failures(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceError   error
		expectedStatus int
	}{
		{
			name: "duplicate email",
			body: `{"Name":"Ada","Email":"ada@x.com","AdminId":"AS-ADM-001","Password":"secret1","ConfirmPassword":"secret1"}`,

			serviceError:   apperrors.ErrEmailAlreadyRegistered,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password mismatch",
			body:           `{"Name":"Ada","Email":"ada@x.com","AdminId":"AS-ADM-001","Password":"secret1","ConfirmPassword":"secret2"}`,
			serviceError:   apperrors.ErrPasswordMismatch,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email rejected before service",
			body:           `{"Name":"Ada","Email":"not-an-email","AdminId":"AS-ADM-001","Password":"secret1","ConfirmPassword":"secret1"}`,
			serviceError:   nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields rejected before service",
			body:           `{"Email":"ada@x.com"}`,
			serviceError:   nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			if tt.serviceError != nil {
				mockService.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
					mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.serviceError)
			}

			h := NewAuthHandler(mockService)
			c, rec := newTestContext(t, http.MethodPost, "/api/auth/admin/signup", tt.body)

			require.NoError(t, h.AdminSignup(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)

			if tt.serviceError == nil {
				mockService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything,
					mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful login",
			body: `{"Email":"ada@x.com","Password":"secret1","Role":"Admin"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "ada@x.com", "secret1", model.RoleAdmin).Return(adaResult(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"Email":"ada@x.com","Password":"wrong","Role":"Admin"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "ada@x.com", "wrong", model.RoleAdmin).
					Return(nil, apperrors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "role mismatch is still a 401",
			body: `{"Email":"ada@x.com","Password":"secret1","Role":"Pilot"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "ada@x.com", "secret1", model.RolePilot).
					Return(nil, apperrors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "throttled login",
			body: `{"Email":"ada@x.com","Password":"secret1","Role":"Admin"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "ada@x.com", "secret1", model.RoleAdmin).
					Return(nil, apperrors.ErrTooManyAttempts)
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "missing password rejected before service",
			body:           `{"Email":"ada@x.com","Role":"Admin"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			h := NewAuthHandler(mockService)
			c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", tt.body)

			require.NoError(t, h.Login(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, "Admin", resp.User.Role)
			} else {
				var resp apperrors.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
			}

			mockService.AssertExpectations(t)
		})
	}
}

// Login failure messages must not distinguish unknown email from wrong password.
func TestAuthHandler_Login_UniformFailureMessage(t *testing.T) {
	bodies := []string{
		`{"Email":"nobody@x.com","Password":"secret1","Role":"Admin"}`,
		`{"Email":"ada@x.com","Password":"wrong","Role":"Admin"}`,
	}

	var messages []string
	for _, body := range bodies {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrInvalidCredentials)

		h := NewAuthHandler(mockService)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", body)
		require.NoError(t, h.Login(c))

		var resp apperrors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		messages = append(messages, resp.Message)
	}

	assert.Equal(t, messages[0], messages[1])
}

func verifiedContext(t *testing.T, claims *auth.Claims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newTestContext(t, http.MethodGet, "/api/auth/verify", "")
	c.Set("user", claims)
	return c, rec
}

func TestAuthHandler_Verify(t *testing.T) {
	accountID := uuid.NewString()
	now := time.Now()
	claims := &auth.Claims{
		Email: "ada@x.com",
		Role:  model.RoleAdmin,
		UID:   "AS-ADM-001",
		Name:  "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	h := NewAuthHandler(new(MockAuthService))
	c, rec := verifiedContext(t, claims)

	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, accountID, resp.User.ID)
	assert.Equal(t, "ada@x.com", resp.User.Email)
	assert.Equal(t, "Admin", resp.User.Role)
	assert.Equal(t, "AS-ADM-001", resp.User.UID)
	assert.Equal(t, "Ada", resp.User.Name)

	types := make(map[string]string, len(resp.Claims))
	for _, entry := range resp.Claims {
		types[entry.Type] = entry.Value
	}
	assert.Equal(t, accountID, types["sub"])
	assert.Equal(t, "Admin", types["role"])
	assert.Contains(t, types, "iat")
	assert.Contains(t, types, "exp")
}

func TestAuthHandler_Verify_NoClaims(t *testing.T) {
	h := NewAuthHandler(new(MockAuthService))
	c, rec := newTestContext(t, http.MethodGet, "/api/auth/verify", "")

	require.NoError(t, h.Verify(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_ListPilots(t *testing.T) {
	adminClaims := &auth.Claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		},
	}
	pilotClaims := &auth.Claims{
		Role: model.RolePilot,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		},
	}

	t.Run("admin can list pilots", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("ListByRole", mock.Anything, model.RolePilot).Return([]model.Account{
			{ID: uuid.New(), Name: "Orville", Role: model.RolePilot},
		}, nil)

		h := NewAuthHandler(mockService)
		c, rec := verifiedContext(t, adminClaims)

		require.NoError(t, h.ListPilots(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("pilot is forbidden", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(mockService)
		c, rec := verifiedContext(t, pilotClaims)

		require.NoError(t, h.ListPilots(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		mockService.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything)
	})
}
