package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_FullNameAndInitials(t *testing.T) {
	user := &User{FirstName: "María", LastName: "González"}

	assert.Equal(t, "María González", user.FullName())
	assert.Equal(t, "MG", user.Initials())

	// Missing parts degrade gracefully.
	assert.Equal(t, "P", (&User{FirstName: "Pedro"}).Initials())
	assert.Equal(t, "Pedro", (&User{FirstName: "Pedro"}).FullName())
	assert.Equal(t, "", (&User{}).Initials())
}

func TestUser_ViewOmitsPasswordHash(t *testing.T) {
	lastLogin := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	user := &User{
		ID:             uuid.New(),
		Email:          "maria@municipio.cl",
		PasswordHash:   "$2a$10$somethingsecret",
		FirstName:      "María",
		LastName:       "González",
		DepartmentID:   "dideco",
		DepartmentName: "Desarrollo Comunitario",
		Role:           RoleManager,
		IsActive:       true,
		LastLogin:      &lastLogin,
		CreatedAt:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	view := user.View()
	assert.Equal(t, user.ID.String(), view.ID)
	assert.Equal(t, "manager", view.Role)
	require.NotNil(t, view.LastLogin)
	assert.Equal(t, "2025-03-14T09:30:00Z", *view.LastLogin)

	// The serialized projection must never leak the hash.
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "somethingsecret")
	assert.NotContains(t, string(raw), "password")
}

func TestUser_ViewZeroTimestamps(t *testing.T) {
	view := (&User{ID: uuid.New(), Role: RoleUser}).View()

	assert.Nil(t, view.LastLogin)
	assert.Nil(t, view.CreatedAt)
	assert.Nil(t, view.UpdatedAt)
}
