// Package auth keeps the admin session: the token saved by login and the
// checks that decide whether it is still usable.
package auth

import (
	"context"
	"errors"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/credentials"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/logger"
)

// Backend is the part of the API a session needs.
type Backend interface {
	Login(ctx context.Context, email, password string) api.Result[api.LoginResponse]
	Me(ctx context.Context) api.Result[api.User]
}

// Session ties the credentials file to the transport's bearer token.
type Session struct {
	backend  Backend
	path     string
	setToken func(string)
}

// NewSession creates a session stored at path. setToken is called whenever
// the active token changes; an empty token means signed out.
func NewSession(backend Backend, path string, setToken func(string)) *Session {
	if setToken == nil {
		setToken = func(string) {}
	}
	return &Session{backend: backend, path: path, setToken: setToken}
}

// Restore loads saved credentials and activates their token. It returns nil
// credentials when no usable session exists.
func (s *Session) Restore() (*credentials.Credentials, error) {
	creds, err := credentials.LoadFrom(s.path)
	if err != nil {
		return nil, err
	}
	if !creds.IsValid() {
		if creds != nil {
			logger.Debug("Saved session expired", "user_id", creds.UserID)
		}
		return nil, nil
	}
	s.setToken(creds.Token)
	return creds, nil
}

// Login authenticates and saves the resulting session.
func (s *Session) Login(ctx context.Context, email, password string) (*credentials.Credentials, error) {
	if email == "" || password == "" {
		return nil, clierrors.ValidationError("credentials", "email and password are required")
	}

	res := s.backend.Login(ctx, email, password)
	if !res.Success {
		if res.Err != nil && res.Err.Type != clierrors.ErrorTypeBackendRejection {
			return nil, res.Err
		}
		return nil, clierrors.AuthError(api.MessageOr(res, "Login failed"))
	}

	u := res.Data.User
	creds := &credentials.Credentials{
		Token:  res.Data.AuthToken(),
		UserID: u.Key(),
		Name:   u.DisplayName(),
		Email:  u.Email,
		Role:   u.Role,
	}
	if creds.Email == "" {
		creds.Email = email
	}
	if err := credentials.SaveTo(s.path, creds); err != nil {
		return nil, err
	}
	s.setToken(creds.Token)
	logger.Info("Logged in", "user_id", creds.UserID, "role", creds.Role)
	return creds, nil
}

// Logout forgets the saved session.
func (s *Session) Logout() error {
	s.setToken("")
	return credentials.DeleteAt(s.path)
}

// Verify asks the backend who the token belongs to. A rejected token clears
// the saved session.
func (s *Session) Verify(ctx context.Context) (api.User, error) {
	res := s.backend.Me(ctx)
	if res.Success {
		return res.Data, nil
	}
	if api.IsUnauthorized(res) {
		if err := s.Logout(); err != nil {
			logger.Warn("Failed to clear rejected session", "error", err)
		}
		return api.User{}, clierrors.UnauthorizedError()
	}
	return api.User{}, api.AsError(res, "Could not verify session")
}

// IsSessionError reports whether err means the user must log in again.
func IsSessionError(err error) bool {
	var cliErr *clierrors.CLIError
	if !errors.As(err, &cliErr) {
		return false
	}
	return cliErr.Type == clierrors.ErrorTypeUnauthorized || cliErr.Type == clierrors.ErrorTypeAuth
}
