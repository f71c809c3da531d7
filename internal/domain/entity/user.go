// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the intranet. Accounts are created by
// administrators and deactivated rather than deleted; every authentication
// path must fail for a deactivated account.
type User struct {
	ID             uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Email          string     // Unique login identifier, stored lowercase.
	PasswordHash   string     // bcrypt hash of the password. Never the plaintext.
	FirstName      string     // The user's given name.
	LastName       string     // The user's family name.
	Phone          string     // Optional contact phone number.
	Avatar         string     // Optional avatar image reference.
	DepartmentID   string     // Identifier of the municipal department.
	DepartmentName string     // Display name of the municipal department.
	Role           Role       // Access level: admin, manager or user.
	IsActive       bool       // Soft-disable flag. False blocks all authentication.
	LastLogin      *time.Time // Timestamp of the last successful login, nil if never.
	CreatedAt      time.Time  // Timestamp of when this account was created.
	UpdatedAt      time.Time  // Timestamp of the last modification.
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercase initials of the user's first and last name.
func (u *User) Initials() string {
	var b strings.Builder
	for _, name := range []string{u.FirstName, u.LastName} {
		for _, r := range name {
			b.WriteRune(r)

			break
		}
	}

	return strings.ToUpper(b.String())
}

// IdentityView is the public projection of a User. The password hash is
// deliberately absent; this is the only user shape that leaves the service.
type IdentityView struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FullName       string  `json:"fullName"`
	Initials       string  `json:"initials"`
	Phone          string  `json:"phone,omitempty"`
	Avatar         string  `json:"avatar,omitempty"`
	DepartmentID   string  `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"isActive"`
	LastLogin      *string `json:"lastLogin,omitempty"`
	CreatedAt      *string `json:"createdAt,omitempty"`
	UpdatedAt      *string `json:"updatedAt,omitempty"`
}

// View maps the user to its public projection.
func (u *User) View() *IdentityView {
	view := &IdentityView{
		ID:             u.ID.String(),
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Initials:       u.Initials(),
		Phone:          u.Phone,
		Avatar:         u.Avatar,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		Role:           u.Role.String(),
		IsActive:       u.IsActive,
	}

	view.LastLogin = formatTime(u.LastLogin)
	if !u.CreatedAt.IsZero() {
		view.CreatedAt = formatTime(&u.CreatedAt)
	}
	if !u.UpdatedAt.IsZero() {
		view.UpdatedAt = formatTime(&u.UpdatedAt)
	}

	return view
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.UTC().Format(time.RFC3339)

	return &formatted
}
