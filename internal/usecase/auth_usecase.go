// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"intranet/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ChangePasswordInput defines the data required to change the caller's password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required,min=6"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// ForgotPasswordInput defines the data required to request a password reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput defines the data required to complete a password reset.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// --- Output DTOs ---

// SessionOutput is the session envelope returned by login and refresh.
type SessionOutput struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int                  `json:"expires_in"`
	User        *entity.IdentityView `json:"user"`
}

// AuthUsecase is the contract the delivery layer depends on for
// authentication, token-based identity resolution and password management.
type AuthUsecase interface {
	// Login verifies credentials and issues a bearer session. A wrong
	// password, an unknown email and a disabled account are indistinguishable
	// to the caller.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// ResolveIdentity turns a bearer token into the current user record.
	// The account state is re-read on every call; a structurally valid token
	// whose subject has been deactivated does not resolve. When required is
	// false a failed resolution yields (nil, nil) instead of an error.
	ResolveIdentity(ctx context.Context, tokenString string, required bool) (*entity.User, error)

	// Refresh re-validates the account and reissues a session with fresh
	// timestamps and the user's current role.
	Refresh(ctx context.Context, identity *entity.User) (*SessionOutput, error)

	// Logout ends the session. With a revocation store wired the presented
	// token is denied until its natural expiry; otherwise logout is a
	// client-side token discard.
	Logout(ctx context.Context, tokenString string) error

	// ChangePassword verifies the current password and stores a hash of the
	// new one. A mismatch returns (false, nil); the caller decides the HTTP framing.
	ChangePassword(ctx context.Context, identity *entity.User, input *ChangePasswordInput) (bool, error)

	// RequestPasswordReset issues a reset token for the account, or nothing
	// when the email is unknown or disabled. The returned token is handed to
	// the delivery mechanism; the outcome visible to the requester is
	// identical either way.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword consumes a reset token and stores a hash of the new password.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
