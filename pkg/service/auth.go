package service

import (
	"context"
	"fmt"

	"github.com/impactboard/admin-cli/pkg/auth"
	"github.com/impactboard/admin-cli/pkg/credentials"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/prompter"
)

// AuthService drives login, logout and whoami.
type AuthService struct {
	session *auth.Session
	prompt  *prompter.Prompter
}

// NewAuthService creates a new auth service. A nil prompter reads stdin.
func NewAuthService(session *auth.Session, p *prompter.Prompter) *AuthService {
	if p == nil {
		p = prompter.Default()
	}
	return &AuthService{session: session, prompt: p}
}

// Login prompts for whatever credentials were not given and signs in
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	var err error
	if email == "" {
		if email, err = s.prompt.String("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = s.prompt.Password("Password: "); err != nil {
			return err
		}
	}

	output.PrintInfo("Authenticating...")
	creds, err := s.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ Logged in as %s", who(creds))
	if creds.Role != "" && creds.Role != "admin" && creds.Role != "moderator" {
		output.PrintWarning("This account's role is %q; admin endpoints will refuse it", creds.Role)
	}
	return nil
}

// Logout forgets the saved session
func (s *AuthService) Logout() error {
	if err := s.session.Logout(); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	output.PrintSuccess("✓ Logged out")
	return nil
}

// WhoAmI asks the backend who the saved token belongs to
func (s *AuthService) WhoAmI(ctx context.Context) error {
	u, err := s.session.Verify(ctx)
	if err != nil {
		return err
	}
	return output.PrintRecord("", u, []output.Field{
		{Label: "Name", Value: u.DisplayName()},
		{Label: "Email", Value: u.Email},
		{Label: "Role", Value: u.Role},
		{Label: "ID", Value: u.Key()},
	})
}

func who(c *credentials.Credentials) string {
	if c.Name != "" && c.Name != c.UserID {
		return c.Name
	}
	return c.Email
}
