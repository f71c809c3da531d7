package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"intranet/internal/domain/entity"
	domainerrors "intranet/internal/domain/errors"
	"intranet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthUsecase stubs only the identity resolution the middleware depends on.
type fakeAuthUsecase struct {
	usecase.AuthUsecase

	resolve func(ctx context.Context, tokenString string, required bool) (*entity.User, error)
}

func (f *fakeAuthUsecase) ResolveIdentity(ctx context.Context, tokenString string, required bool) (*entity.User, error) {
	return f.resolve(ctx, tokenString, required)
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_AuthenticateSetsIdentityAndToken(t *testing.T) {
	user := &entity.User{Role: entity.RoleUser}
	m := NewAuthMiddleware(&fakeAuthUsecase{
		resolve: func(_ context.Context, tokenString string, required bool) (*entity.User, error) {
			assert.Equal(t, "the-token", tokenString)
			assert.True(t, required)

			return user, nil
		},
	})

	c, _ := newContext("Bearer the-token")
	err := m.Authenticate(func(c echo.Context) error {
		assert.Same(t, user, Identity(c))
		assert.Equal(t, "the-token", BearerToken(c))

		return nil
	})(c)
	require.NoError(t, err)
}

func TestAuthMiddleware_AuthenticatePropagatesFailure(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthUsecase{
		resolve: func(_ context.Context, _ string, _ bool) (*entity.User, error) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("bad token")
		},
	})

	c, _ := newContext("Bearer bad")
	err := m.Authenticate(func(echo.Context) error { return nil })(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAuthMiddleware_NonBearerSchemeYieldsEmptyToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthUsecase{
		resolve: func(_ context.Context, tokenString string, _ bool) (*entity.User, error) {
			// Basic auth must not be mistaken for a bearer token.
			assert.Empty(t, tokenString)

			return nil, domainerrors.ErrUnauthenticated.WrapMessage("missing bearer token")
		},
	})

	c, _ := newContext("Basic dXNlcjpwYXNz")
	err := m.Authenticate(func(echo.Context) error { return nil })(c)
	assert.Error(t, err)
}

func TestAuthMiddleware_OptionalAuthenticate(t *testing.T) {
	user := &entity.User{Role: entity.RoleUser}

	t.Run("resolves when token is usable", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthUsecase{
			resolve: func(_ context.Context, _ string, required bool) (*entity.User, error) {
				assert.False(t, required)

				return user, nil
			},
		})

		c, _ := newContext("Bearer ok")
		err := m.OptionalAuthenticate(func(c echo.Context) error {
			assert.Same(t, user, Identity(c))

			return nil
		})(c)
		require.NoError(t, err)
	})

	t.Run("anonymous when token is absent", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthUsecase{
			resolve: func(_ context.Context, _ string, _ bool) (*entity.User, error) {
				return nil, nil
			},
		})

		c, _ := newContext("")
		err := m.OptionalAuthenticate(func(c echo.Context) error {
			assert.Nil(t, Identity(c))
			assert.Empty(t, BearerToken(c))

			return nil
		})(c)
		require.NoError(t, err)
	})
}

func TestAuthMiddleware_RequireRoleIsExact(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthUsecase{})

	run := func(identity *entity.User, allowed ...entity.Role) error {
		c, _ := newContext("")
		if identity != nil {
			c.Set(keyIdentity, identity)
		}

		return m.RequireRole(allowed...)(func(echo.Context) error { return nil })(c)
	}

	assert.NoError(t, run(&entity.User{Role: entity.RoleManager}, entity.RoleManager))

	// Admin does not implicitly hold the manager role.
	err := run(&entity.User{Role: entity.RoleAdmin}, entity.RoleManager)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = run(&entity.User{Role: entity.RoleUser}, entity.RoleAdmin, entity.RoleManager)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Missing identity is an authentication problem, not an authorization one.
	err = run(nil, entity.RoleAdmin)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
