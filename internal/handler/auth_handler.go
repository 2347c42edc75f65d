package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"aerosafe/internal/auth"
	apperrors "aerosafe/internal/errors"
	"aerosafe/internal/model"
	"aerosafe/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminSignupRequest represents an admin signup request.
type AdminSignupRequest struct {
	Name            string `json:"Name" validate:"required"`
	Email           string `json:"Email" validate:"required,email"`
	AdminID         string `json:"AdminId"`
	Password        string `json:"Password" validate:"required,min=6"`
	ConfirmPassword string `json:"ConfirmPassword" validate:"required"`
}

// PilotSignupRequest represents a pilot signup request.
type PilotSignupRequest struct {
	Name            string `json:"Name" validate:"required"`
	Email           string `json:"Email" validate:"required,email"`
	PilotID         string `json:"PilotId"`
	Password        string `json:"Password" validate:"required,min=6"`
	ConfirmPassword string `json:"ConfirmPassword" validate:"required"`
}

// LoginRequest represents a login request for either role.
type LoginRequest struct {
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required"`
	Role     string `json:"Role" validate:"required"`
}

// UserPayload is the user object returned by auth endpoints.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	UID   string `json:"uid"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *UserPayload `json:"user,omitempty"`
}

// ClaimEntry is a single token claim echoed by the verify endpoint.
type ClaimEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// VerifyResponse is the verify endpoint response.
type VerifyResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserPayload `json:"user"`
	Claims  []ClaimEntry `json:"claims"`
}

func userPayload(account *model.Account) *UserPayload {
	return &UserPayload{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role.String(),
		UID:   account.UID,
	}
}

func fail(c echo.Context, err error) error {
	status, message := apperrors.MapErrorToHTTP(err)
	return c.JSON(status, apperrors.ErrorResponse{Success: false, Message: message})
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Success: false,
		Message: "Invalid request data",
	})
}

// AdminSignup godoc
// @Summary Register a new admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminSignupRequest true "Admin signup data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/admin/signup [post]
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	var req AdminSignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c)
	}

	result, err := h.authService.SignUp(c.Request().Context(), model.RoleAdmin,
		req.Name, req.Email, req.AdminID, req.Password, req.ConfirmPassword)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Admin account created successfully",
		Token:   result.Token,
		User:    userPayload(result.Account),
	})
}

// PilotSignup godoc
// @Summary Register a new pilot account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PilotSignupRequest true "Pilot signup data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/pilot/signup [post]
func (h *AuthHandler) PilotSignup(c echo.Context) error {
	var req PilotSignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c)
	}

	result, err := h.authService.SignUp(c.Request().Context(), model.RolePilot,
		req.Name, req.Email, req.PilotID, req.Password, req.ConfirmPassword)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Pilot account created successfully",
		Token:   result.Token,
		User:    userPayload(result.Account),
	})
}

// Login godoc
// @Summary Login as admin or pilot
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User:    userPayload(result.Account),
	})
}

// Verify godoc
// @Summary Verify the caller's token and echo its claims
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} VerifyResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid token",
		})
	}

	entries := []ClaimEntry{
		{Type: "sub", Value: claims.Subject},
		{Type: "email", Value: claims.Email},
		{Type: "role", Value: claims.Role.String()},
		{Type: "uid", Value: claims.UID},
		{Type: "name", Value: claims.Name},
	}
	if claims.IssuedAt != nil {
		entries = append(entries, ClaimEntry{Type: "iat", Value: strconv.FormatInt(claims.IssuedAt.Unix(), 10)})
	}
	if claims.ExpiresAt != nil {
		entries = append(entries, ClaimEntry{Type: "exp", Value: strconv.FormatInt(claims.ExpiresAt.Unix(), 10)})
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Success: true,
		Message: "Token is valid",
		User: &UserPayload{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role.String(),
			UID:   claims.UID,
		},
		Claims: entries,
	})
}

// ListPilots godoc
// @Summary List pilot accounts (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pilots [get]
func (h *AuthHandler) ListPilots(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
			Success: false,
			Message: "invalid token",
		})
	}
	if claims.Role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
			Success: false,
			Message: "admin role required",
		})
	}

	accounts, err := h.authService.ListByRole(c.Request().Context(), model.RolePilot)
	if err != nil {
		return fail(c, err)
	}

	pilots := make([]*UserPayload, 0, len(accounts))
	for i := range accounts {
		pilots = append(pilots, userPayload(&accounts[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"pilots":  pilots,
	})
}
