package usecase

import (
	"context"

	"afisha/internal/domain/entity"
)

// AuthUsecase owns the Anonymous ⇄ Authenticated transition.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*entity.User, error)
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *entity.User
	// HandleAuthFailure inspects an operation error; an authentication
	// rejection while a session is present drops the session and all
	// viewer-scoped cache state. Reports whether the session was cleared.
	HandleAuthFailure(err error) bool
}

// --- Input DTOs ---

// LoginInput defines the credentials of a login attempt.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=user business"`
}
