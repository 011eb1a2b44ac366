package api

import (
	"context"
	"net/http"
	"strings"

	"calibra/coach-app/internal/domain"
)

// AuthService wraps the public authentication endpoints. These are the
// only calls that work without a session.
type AuthService struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's login/claim response: the opaque token plus
// the identity it was issued for.
type LoginResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
	Role  domain.Role     `json:"role"`
}

// Login exchanges credentials for a token and identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := s.c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	if result.Role != "" {
		result.User.Role = result.Role
	}
	return &result, nil
}

// Me fetches the identity behind the currently held token.
func (s *AuthService) Me(ctx context.Context) (*domain.Identity, error) {
	var identity domain.Identity
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

type claimRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ClaimAccount exchanges a one-time invite code and a new password for a
// session. Codes are case-insensitive and normalized to uppercase before
// transmission.
func (s *AuthService) ClaimAccount(ctx context.Context, email, code, password string) (*LoginResult, error) {
	req := claimRequest{
		Email:    email,
		Code:     strings.ToUpper(strings.TrimSpace(code)),
		Password: password,
	}
	var result LoginResult
	if err := s.c.do(ctx, http.MethodPost, "/api/auth/claim-account", req, &result); err != nil {
		return nil, err
	}
	if result.Role != "" {
		result.User.Role = result.Role
	}
	return &result, nil
}

// ResetPassword sets a new password using a recovery code. The code is
// normalized the same way as invite codes.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, password string) error {
	req := claimRequest{
		Email:    email,
		Code:     strings.ToUpper(strings.TrimSpace(code)),
		Password: password,
	}
	return s.c.do(ctx, http.MethodPost, "/api/auth/reset-password", req, nil)
}
