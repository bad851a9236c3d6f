package api

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/impactboard/admin-cli/pkg/logger"
)

// AuthService wraps /api/auth.
type AuthService struct {
	c *resty.Client
}

func NewAuthService(c *resty.Client) *AuthService {
	return &AuthService{c: c}
}

// Login authenticates with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) Result[LoginResponse] {
	logger.Debug("Attempting login", "email", email)
	res := call(ctx, s.c, "auth", "login", LoginResponse{}, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(LoginRequest{Email: email, Password: password}).Post("/api/auth/login")
	})
	if res.Success && res.Data.AuthToken() == "" {
		res.Success = false
		res.Data = LoginResponse{}
		res.Message = "Login response did not include a token"
	}
	return res
}

// Me retrieves the signed-in account
func (s *AuthService) Me(ctx context.Context) Result[User] {
	return call(ctx, s.c, "auth", "me", User{}, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/auth/me")
	})
}
