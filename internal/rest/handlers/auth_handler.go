package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padmin-io/newsboard/internal/auth"
	"github.com/padmin-io/newsboard/internal/logger"
)

// LoginService verifies credentials and issues tokens.
type LoginService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	service LoginService
	log     logger.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service LoginService, log logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &AuthHandler{service: service, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges an email/password pair for a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Code: codeValidation})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidation})
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "login failed", Code: codeUnauthorized})
	}
	if err != nil {
		h.log.ErrorObj("login failed", "login_error", map[string]any{
			"error": err.Error(),
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed", Code: codeInternal})
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
