package api

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

type authAccessor struct {
	client *Client
}

// NewAuthAccessor creates the accessor for the credential exchange.
func NewAuthAccessor(client *Client) service.AuthAccessor {
	return &authAccessor{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (a *authAccessor) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	body := loginRequest{Email: email, Password: password}

	var session entity.Session
	if err := a.client.post(ctx, "/auth/login", body, nil, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (a *authAccessor) Register(ctx context.Context, req service.RegisterRequest) (*entity.Session, error) {
	body := registerRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     string(req.Role),
	}

	var session entity.Session
	if err := a.client.post(ctx, "/auth/register", body, nil, &session); err != nil {
		return nil, err
	}

	return &session, nil
}
