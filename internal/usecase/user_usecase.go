package usecase

import (
	"context"

	"intranet/internal/domain/entity"
)

// CreateUserInput defines the data an administrator provides to create an account.
type CreateUserInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Phone          string `json:"phone"`
	DepartmentID   string `json:"department_id" validate:"required"`
	DepartmentName string `json:"department_name" validate:"required"`
	Role           string `json:"role"`
}

// CreateUserOutput returns the newly created account's public projection.
type CreateUserOutput struct {
	User *entity.IdentityView `json:"user"`
}

// UserUsecase defines the administrative user-management operations.
type UserUsecase interface {
	// CreateUser registers a new account with a hashed password. Reserved to
	// administrators by the delivery layer.
	CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error)
}
