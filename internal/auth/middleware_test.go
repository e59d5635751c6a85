package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// newGateApp builds a fiber app that maps DomainError statuses the same
// way the transport layer does.
func newGateApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	middleware := NewAuthMiddleware(tm)

	token, _, err := tm.Generate("user-1", domain.RoleAuthor)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app := newGateApp(middleware.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			t.Fatal("identity not attached")
		}
		if identity.UserID != "user-1" || identity.Role != domain.RoleAuthor {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	middleware := NewAuthMiddleware(tm)
	forged, _, _ := NewTokenManager("other-secret", time.Hour).Generate("user-1", domain.RoleViewer)

	app := newGateApp(middleware.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"bare token", "sometoken", http.StatusUnauthorized},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}
