package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/blog-service/internal/domain"
)

// ErrInvalidToken is returned for every verification failure. Malformed,
// forged and expired tokens are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies signed identity tokens. The signing
// secret is injected at construction and read-only afterwards.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. A non-positive TTL falls back to
// the 24h default validity window.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload: the identity pair plus expiry.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the verified identity pair carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.Subject, Role: c.Role}
}

// Generate signs a token for the given user and role, expiring one
// validity window from now.
func (tm *TokenManager) Generate(userID string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse verifies signature and expiry and returns the claims. All failure
// modes collapse into ErrInvalidToken.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
