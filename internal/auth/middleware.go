package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the verified (subject, role) pair for one request. It lives
// for the duration of the request and is never persisted.
type Identity struct {
	UserID string
	Role   domain.Role
}

// AuthMiddleware validates bearer tokens and attaches the verified
// identity to the request. It performs no store lookups: a deleted user's
// token stays usable until it expires, which is an accepted tradeoff.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewInvalidCredential("invalid token")
	}

	identity := claims.Identity()
	c.Locals(identityKey, &identity)
	return c.Next()
}

// IdentityFromContext retrieves the verified identity attached by Handle.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
