package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	iauth "github.com/heartmarshall/engage-agent/internal/auth"
	"github.com/heartmarshall/engage-agent/internal/domain"
)

// Login checks admin credentials and issues a bearer token.
// Returns ErrUnauthorized for a wrong username or password.
func (s *Service) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.username)) == 1
	// The hash is always compared so a wrong username costs the same time.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if !userOK || passErr != nil {
		s.log.WarnContext(ctx, "admin login failed", slog.String("username", input.Username))
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwt.GenerateAccessToken(s.username, iauth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in", slog.String("username", s.username))

	return &TokenResult{AccessToken: token, TokenType: "bearer"}, nil
}

// ValidateToken returns the admin username carried by token.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	subject, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	if role != iauth.RoleAdmin || subject != s.username {
		return "", domain.ErrUnauthorized
	}
	return subject, nil
}
