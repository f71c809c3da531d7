// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"intranet/config"
	"intranet/internal/delivery/http/middleware"
	"intranet/internal/delivery/http/response"
	"intranet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		cfg:    cfg,
		logger: logger,
	}
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Refresh reissues the session for the authenticated caller.
func (h *AuthHandler) Refresh(c echo.Context) error {
	identity := middleware.Identity(c)

	output, err := h.authUC.Refresh(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout ends the authenticated caller's session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUC.Logout(c.Request().Context(), middleware.BearerToken(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Me returns the authenticated caller's public projection.
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.Identity(c)

	return response.Success(c, http.StatusOK, identity.View(), "Profile retrieved successfully")
}

// ChangePassword replaces the caller's password after verifying the current one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ok, err := h.authUC.ChangePassword(c.Request().Context(), middleware.Identity(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return response.Error(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Current password is incorrect", "")
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password changed successfully"}, "Password changed successfully")
}

// ForgotPassword accepts a reset request. The body of the response never
// reveals whether the email maps to an account.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var input usecase.ForgotPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.authUC.RequestPasswordReset(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	data := map[string]string{}
	// No mail delivery is wired on the intranet yet; in debug the token is
	// echoed back so the flow can be exercised end to end.
	if h.cfg.Env.Debug && token != "" {
		data["reset_token"] = token
	}

	return response.Success(c, http.StatusOK, data, "If the email is registered, reset instructions have been issued")
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input usecase.ResetPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password has been reset"}, "Password reset successful")
}
