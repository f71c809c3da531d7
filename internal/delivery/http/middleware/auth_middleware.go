// Package middleware contains the echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	"intranet/internal/domain/entity"
	domainerrors "intranet/internal/domain/errors"
	"intranet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// keyIdentity is the echo.Context key for the resolved user record.
	keyIdentity = "identity"
	// keyBearerToken is the echo.Context key for the raw presented token.
	keyBearerToken = "bearerToken"
)

// AuthMiddleware resolves the bearer token into the current user record.
// Validation alone is not enough; the account is re-read so a deactivated
// user is cut off even while holding a structurally valid token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate requires a valid bearer token bound to an active account.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)

		identity, err := m.authUC.ResolveIdentity(c.Request().Context(), tokenString, true)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(keyIdentity, identity)
		c.Set(keyBearerToken, tokenString)

		return next(c)
	}
}

// OptionalAuthenticate resolves the identity when a usable token is present
// and lets the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)

		identity, err := m.authUC.ResolveIdentity(c.Request().Context(), tokenString, false)
		if err != nil {
			return errors.WithStack(err)
		}

		if identity != nil {
			c.Set(keyIdentity, identity)
			c.Set(keyBearerToken, tokenString)
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that admits only the listed roles.
// Membership is exact; an admin is not implicitly a manager. It must be used
// AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if identity == nil {
				return errors.WithStack(domainerrors.ErrUnauthenticated.WrapMessage("role check without identity"))
			}

			if !entity.Roles(allowed).Contains(identity.Role) {
				return errors.WithStack(domainerrors.ErrForbidden.WrapMessage("role " + identity.Role.String() + " is not admitted"))
			}

			return next(c)
		}
	}
}

// Identity returns the resolved user record, or nil for anonymous requests.
func Identity(c echo.Context) *entity.User {
	if identity, ok := c.Get(keyIdentity).(*entity.User); ok {
		return identity
	}

	return nil
}

// BearerToken returns the raw token the current request presented.
func BearerToken(c echo.Context) string {
	if token, ok := c.Get(keyBearerToken).(string); ok {
		return token
	}

	return ""
}

// bearerToken extracts the token from the Authorization header. A missing
// header or a non-Bearer scheme yields an empty string.
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}

	return strings.TrimSpace(tokenString)
}
