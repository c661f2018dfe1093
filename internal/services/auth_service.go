// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopline/shopline-backend/internal/clients"
	"github.com/shopline/shopline-backend/internal/store"
	"github.com/shopline/shopline-backend/internal/utils"
)

// ErrInvalidCredentials covers both a failed local match against the user
// list and a rejection by the remote login endpoint; callers present them
// identically so the response does not leak which step failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	authClient *clients.AuthClient
	sessions   store.SessionStore
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionStatus struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

func NewAuthService(authClient *clients.AuthClient, sessions store.SessionStore) *AuthService {
	return &AuthService{
		authClient: authClient,
		sessions:   sessions,
	}
}

// Login resolves the email against the demo API's user list, compares the
// password in plaintext (the external API's contract), exchanges the
// matched username for a token, and persists it as the session.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	users, err := s.authClient.FetchUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch users: %w", err)
	}

	var matched *clients.RemoteUser
	for i := range users {
		if users[i].Email == req.Email {
			matched = &users[i]
			break
		}
	}

	if matched == nil || matched.Password != req.Password {
		return "", ErrInvalidCredentials
	}

	token, err := s.authClient.Login(ctx, matched.Username, req.Password)
	if err != nil {
		if errors.Is(err, clients.ErrLoginRejected) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login request failed: %w", err)
	}

	if err := s.sessions.Put(ctx, token); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// Logout destroys the persisted session token. Idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Delete(ctx)
}

// Status derives the logged-in flag from token presence and decodes a
// display username from the token's claims when possible.
func (s *AuthService) Status(ctx context.Context) (SessionStatus, error) {
	token, exists, err := s.sessions.Token(ctx)
	if err != nil {
		return SessionStatus{}, err
	}

	if !exists {
		return SessionStatus{LoggedIn: false}, nil
	}

	return SessionStatus{
		LoggedIn: true,
		Username: utils.DecodeTokenUsername(token),
	}, nil
}
