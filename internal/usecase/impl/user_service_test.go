package impl

import (
	"context"
	"log/slog"
	"testing"

	"intranet/config"
	domainerrors "intranet/internal/domain/errors"
	infraauth "intranet/internal/infra/auth"
	"intranet/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*fakeUserRepo, usecase.UserUsecase) {
	t.Helper()

	repo := newFakeUserRepo()
	svc := NewUserService(UserServiceParams{
		TxManager: &fakeTxManager{repo: repo},
		Hasher:    infraauth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Config:    &config.Config{Auth: &config.AuthConfig{}},
		Logger:    slog.New(slog.DiscardHandler),
	})

	return repo, svc
}

func TestUserService_CreateUser(t *testing.T) {
	repo, svc := newUserFixture(t)
	ctx := context.Background()

	out, err := svc.CreateUser(ctx, &usecase.CreateUserInput{
		Email:          "Nuevo@Municipio.CL",
		Password:       "initial-pass",
		FirstName:      "Pedro",
		LastName:       "Soto",
		DepartmentID:   "aseo",
		DepartmentName: "Dirección de Aseo y Ornato",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)

	assert.Equal(t, "nuevo@municipio.cl", out.User.Email)
	assert.Equal(t, "user", out.User.Role)
	assert.True(t, out.User.IsActive)

	stored, err := repo.FindByEmail(ctx, "nuevo@municipio.cl")
	require.NoError(t, err)
	assert.NotEqual(t, "initial-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("initial-pass")))
}

func TestUserService_CreateUser_ExplicitRole(t *testing.T) {
	_, svc := newUserFixture(t)

	out, err := svc.CreateUser(context.Background(), &usecase.CreateUserInput{
		Email:          "jefa@municipio.cl",
		Password:       "initial-pass",
		FirstName:      "Carla",
		LastName:       "Muñoz",
		DepartmentID:   "dideco",
		DepartmentName: "Desarrollo Comunitario",
		Role:           "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", out.User.Role)
}

func TestUserService_CreateUser_UnknownRole(t *testing.T) {
	_, svc := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), &usecase.CreateUserInput{
		Email:          "x@municipio.cl",
		Password:       "initial-pass",
		FirstName:      "X",
		LastName:       "Y",
		DepartmentID:   "d",
		DepartmentName: "D",
		Role:           "superuser",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	_, svc := newUserFixture(t)
	ctx := context.Background()

	input := &usecase.CreateUserInput{
		Email:          "dup@municipio.cl",
		Password:       "initial-pass",
		FirstName:      "A",
		LastName:       "B",
		DepartmentID:   "d",
		DepartmentName: "D",
	}

	_, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}
