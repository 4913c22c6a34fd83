package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/jhmfreitas/usermanager-challenge/config"
	"github.com/jhmfreitas/usermanager-challenge/internal/security"
)

// Role names a capability granted to an authenticated principal.
type Role string

const (
	// RoleAdmin may list all users in addition to the regular operations.
	RoleAdmin Role = "ADMIN"
	// RoleUser may perform every operation except listing all users.
	RoleUser Role = "USER"
)

type principal struct {
	passwordHash string
	role         Role
}

// BasicAuth guards the API with http-basic authentication over a fixed set
// of demo principals. Credentials are hashed at startup and verified through
// the same hasher the domain uses; raw passwords are not retained.
type BasicAuth struct {
	users  map[string]principal
	hasher security.PasswordHasher
}

// NewBasicAuth hashes the configured demo credentials and builds the guard.
func NewBasicAuth(cfg config.AuthConfig, hasher security.PasswordHasher) (*BasicAuth, error) {
	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	userHash, err := hasher.Hash(cfg.UserPassword)
	if err != nil {
		return nil, fmt.Errorf("hash user password: %w", err)
	}

	return &BasicAuth{
		users: map[string]principal{
			cfg.AdminUsername: {passwordHash: adminHash, role: RoleAdmin},
			cfg.UserUsername:  {passwordHash: userHash, role: RoleUser},
		},
		hasher: hasher,
	}, nil
}

// Handler returns the fiber middleware enforcing authentication.
func (a *BasicAuth) Handler() fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: "usermanager",
		Authorizer: func(username, password string) bool {
			p, ok := a.users[username]
			if !ok {
				return false
			}
			return a.hasher.Verify(password, p.passwordHash)
		},
	})
}

// IsInRole reports whether the authenticated username carries the role. The
// username comes from c.Locals("username"), set by the basicauth middleware.
func (a *BasicAuth) IsInRole(username string, role Role) bool {
	p, ok := a.users[username]
	return ok && p.role == role
}
