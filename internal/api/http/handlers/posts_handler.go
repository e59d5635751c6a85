package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostsHandler manages post endpoints.
type PostsHandler struct {
	service *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{service: postService}
}

// ListPosts GET /posts.
func (h *PostsHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponses(posts)})
}

// GetPost GET /posts/:id.
func (h *PostsHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// CreatePost POST /posts. The author-role gate runs before this handler.
func (h *PostsHandler) CreatePost(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("title and content required", nil)
	}

	post, err := h.service.CreatePost(c.Context(), identity, service.PostCreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// UpdatePost PUT /posts/:id.
func (h *PostsHandler) UpdatePost(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.service.UpdatePost(c.Context(), identity, c.Params("id"), service.PostUpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// DeletePost DELETE /posts/:id.
func (h *PostsHandler) DeletePost(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	post, err := h.service.DeletePost(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
		"post":    dto.NewPostResponse(post),
	})
}
