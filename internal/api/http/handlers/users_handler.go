package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// UsersHandler manages account endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateUser PUT /users/:id. Self-service unless the caller holds the
// author override.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" && req.Email == "" && req.Password == "" {
		return apperrors.NewValidationError("nothing to update", nil)
	}

	user, err := h.service.UpdateUser(c.Context(), identity, c.Params("id"), service.UserUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// DeleteUser DELETE /users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	user, err := h.service.DeleteUser(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
		"user":    dto.NewUserResponse(user),
	})
}
