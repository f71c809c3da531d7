// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"intranet/config"
	deliverycontext "intranet/internal/delivery/context"
	"intranet/internal/domain/entity"
	domainerrors "intranet/internal/domain/errors"
	"intranet/internal/domain/repository"
	"intranet/internal/domain/service"
	"intranet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It combines the password
// hasher, the token service and the user repository into the login, identity
// resolution and password management flows.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	revocation   service.RevocationStore // nil when revocation is not wired
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Revocation   service.RevocationStore `optional:"true"`
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		revocation:   params.Revocation,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials and issues a bearer session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.authenticate(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	// Record the login time. Failure here must never turn a successful
	// authentication into a failure.
	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		srv.log(ctx).Warn("Failed to update last login", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	output, err := srv.issueSession(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID), slog.String("role", user.Role.String()))

	return output, nil
}

// authenticate checks the credentials against the stored record. Every
// failure path returns ErrInvalidCredentials so callers cannot distinguish an
// unknown email, a wrong password and a disabled account; the logs can.
func (srv *authService) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Login failed", slog.Any("userID", user.ID), slog.String("reason", "account disabled"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed for disabled account")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.Any("userID", user.ID), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	return user, nil
}

// issueSession signs an access token for the user and wraps it in the session envelope.
func (srv *authService) issueSession(user *entity.User) (*usecase.SessionOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	return &usecase.SessionOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(srv.tokenService.AccessTokenDuration().Seconds()),
		User:        user.View(),
	}, nil
}

// ResolveIdentity turns a bearer token into the current user record.
// The token is only proof of possession; the account's current state decides.
func (srv *authService) ResolveIdentity(ctx context.Context, tokenString string, required bool) (*entity.User, error) {
	fail := func(reason string) (*entity.User, error) {
		srv.log(ctx).Debug("Identity resolution failed", slog.String("reason", reason))
		if required {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage(reason)
		}

		return nil, nil
	}

	if tokenString == "" {
		return fail("missing bearer token")
	}

	claims, err := srv.tokenService.ValidateToken(tokenString, service.TokenTypeAccess)
	if err != nil {
		return fail(err.Error())
	}

	if srv.revocation != nil && srv.revocation.IsRevoked(ctx, claims.ID) {
		return fail("token has been revoked")
	}

	// A token stays structurally valid after the account is disabled, so the
	// current record is re-read on every request instead of trusting the
	// token's embedded snapshot.
	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !user.IsActive {
		return fail("token subject is disabled")
	}

	return user, nil
}

// Refresh re-validates the account and reissues a session. The role embedded
// in the old token is ignored; the reissued token carries the current role.
func (srv *authService) Refresh(ctx context.Context, identity *entity.User) (*usecase.SessionOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("refresh failed for removed account")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Refresh rejected", slog.Any("userID", user.ID), slog.String("reason", "account disabled"))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage("refresh failed for disabled account")
	}

	output, err := srv.issueSession(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", user.ID))

	return output, nil
}

// Logout ends the session. Without a revocation store this is a client-side
// token discard and the call only acknowledges it.
func (srv *authService) Logout(ctx context.Context, tokenString string) error {
	if srv.revocation == nil {
		return nil
	}

	claims, err := srv.tokenService.ValidateToken(tokenString, service.TokenTypeAccess)
	if err != nil {
		// Nothing to revoke for a token that never verified.
		srv.log(ctx).Debug("Logout with invalid token", slog.Any("error", err))

		return nil
	}

	if err := srv.revocation.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	srv.log(ctx).Info("Token revoked on logout", slog.Any("userID", claims.UserID))

	return nil
}

// ChangePassword verifies the current password and stores a hash of the new one.
func (srv *authService) ChangePassword(ctx context.Context, identity *entity.User, input *usecase.ChangePasswordInput) (bool, error) {
	if !srv.hasher.Check(input.CurrentPassword, identity.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("userID", identity.ID), slog.String("reason", "current password mismatch"))

		return false, nil
	}

	if err := srv.storePasswordHash(ctx, identity.ID, input.NewPassword); err != nil {
		return false, err
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", identity.ID))

	return true, nil
}

// RequestPasswordReset issues a reset token, or nothing for an unknown or
// disabled account. The caller-visible outcome is identical either way.
func (srv *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	normalized := normalizeEmail(email)

	user, err := srv.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email", slog.String("email", normalized))

			return "", nil
		}

		return "", errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive {
		srv.log(ctx).Info("Password reset requested for disabled account", slog.Any("userID", user.ID))

		return "", nil
	}

	token, err := srv.tokenService.GeneratePasswordResetToken(user.ID, user.Email)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign password reset token")
	}

	srv.log(ctx).Info("Password reset token issued", slog.Any("userID", user.ID))

	return token, nil
}

// ResetPassword consumes a reset token and stores a hash of the new password.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	claims, err := srv.tokenService.ValidateToken(input.Token, service.TokenTypePasswordReset)
	if err != nil {
		srv.log(ctx).Warn("Password reset rejected", slog.Any("error", err))

		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token did not verify")
	}

	if srv.revocation != nil && srv.revocation.IsRevoked(ctx, claims.ID) {
		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token already used")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token subject no longer exists")
		}

		return errors.Wrap(err, "failed to find user by id")
	}

	if !user.IsActive {
		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token subject is disabled")
	}

	if err := srv.storePasswordHash(ctx, user.ID, input.NewPassword); err != nil {
		return err
	}

	// With a revocation store wired the reset token becomes single-use.
	if srv.revocation != nil {
		if err := srv.revocation.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			srv.log(ctx).Warn("Failed to revoke used reset token", slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return nil
}

// storePasswordHash hashes the new password and persists it inside a transaction.
func (srv *authService) storePasswordHash(ctx context.Context, userID uuid.UUID, newPassword string) error {
	newHash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		srv.log(ctx).Error("Password hashing failed", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load user for password update")
		}

		user.PasswordHash = newHash

		return errors.Wrap(userRepo.Update(ctx, user), "failed to persist new password hash")
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password update transaction")
	}

	return nil
}

// normalizeEmail lowercases and trims the login identifier. Lookups always
// receive the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
