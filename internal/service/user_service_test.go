package service_test

import (
	"context"
	"testing"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/service"
)

func seedUser(t *testing.T, repo *memUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Username: email, Email: email, PasswordHash: "x", Role: role}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserServiceSelfService(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := service.NewUserService(repo, 4)

	target := seedUser(t, repo, "v1@example.com", domain.RoleViewer)
	other := seedUser(t, repo, "v2@example.com", domain.RoleViewer)

	// A viewer updates only their own account.
	self := &auth.Identity{UserID: target.ID, Role: domain.RoleViewer}
	updated, err := svc.UpdateUser(ctx, self, target.ID, service.UserUpdateInput{Username: "renamed"})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Username != "renamed" {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Another viewer is denied.
	stranger := &auth.Identity{UserID: other.ID, Role: domain.RoleViewer}
	if _, err := svc.UpdateUser(ctx, stranger, target.ID, service.UserUpdateInput{Username: "hijack"}); errCode(t, err) != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.DeleteUser(ctx, stranger, target.ID); errCode(t, err) != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	// An author acts on any account.
	admin := &auth.Identity{UserID: "author-1", Role: domain.RoleAuthor}
	if _, err := svc.DeleteUser(ctx, admin, target.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}

func TestUserServicePasswordRehash(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := service.NewUserService(repo, 4)

	target := seedUser(t, repo, "v1@example.com", domain.RoleViewer)
	self := &auth.Identity{UserID: target.ID, Role: domain.RoleViewer}

	updated, err := svc.UpdateUser(ctx, self, target.ID, service.UserUpdateInput{Password: "new-password"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.PasswordHash == "x" || updated.PasswordHash == "new-password" {
		t.Fatalf("password not rehashed: %q", updated.PasswordHash)
	}
	if err := auth.ComparePassword(updated.PasswordHash, "new-password"); err != nil {
		t.Fatalf("rehashed password does not verify: %v", err)
	}
}

func TestUserServiceNotFoundPrecedesOwnership(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUserService(newMemUserRepo(), 4)

	stranger := &auth.Identity{UserID: "viewer-1", Role: domain.RoleViewer}
	if _, err := svc.UpdateUser(ctx, stranger, "no-such-user", service.UserUpdateInput{Username: "x"}); errCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.DeleteUser(ctx, stranger, "no-such-user"); errCode(t, err) != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := service.NewAuthService(authConfig(), repo, dispatcher)

	user, token, _, err := svc.RegisterUser(ctx, "v1", "v1@example.com", "password")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != domain.RoleViewer {
		t.Fatalf("registration must default to viewer, got %s", user.Role)
	}
	if token == "" {
		t.Fatal("expected token at registration")
	}

	// Claims round-trip through the service's own manager.
	claims, err := svc.TokenManager().Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Identity().UserID != user.ID {
		t.Fatalf("token subject mismatch: %s", claims.Subject)
	}

	// Duplicate email is a conflict.
	if _, _, _, err := svc.RegisterUser(ctx, "v1", "v1@example.com", "password"); errCode(t, err) != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	// Login succeeds with the right password, fails uniformly otherwise.
	if _, _, _, err := svc.LoginUser(ctx, "v1@example.com", "password"); err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if _, _, _, err := svc.LoginUser(ctx, "v1@example.com", "wrong"); errCode(t, err) != "INVALID_CREDENTIAL" {
		t.Fatalf("expected INVALID_CREDENTIAL, got %v", err)
	}
	if _, _, _, err := svc.LoginUser(ctx, "nobody@example.com", "password"); errCode(t, err) != "INVALID_CREDENTIAL" {
		t.Fatalf("expected INVALID_CREDENTIAL, got %v", err)
	}
}
