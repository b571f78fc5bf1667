// Package auth implements admin authentication.
package auth

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/engage-agent/internal/config"
)

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(username, role string) (string, error)
	ValidateAccessToken(token string) (string, string, error)
}

// Service implements admin login and token validation.
type Service struct {
	log          *slog.Logger
	jwt          jwtManager
	username     string
	passwordHash []byte
}

// NewService creates a new auth service instance. The admin password hash is
// taken from cfg or derived from the plain password once, here.
func NewService(logger *slog.Logger, jwt jwtManager, cfg config.AuthConfig) (*Service, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}

	return &Service{
		log:          logger.With("service", "auth"),
		jwt:          jwt,
		username:     cfg.AdminUsername,
		passwordHash: hash,
	}, nil
}
