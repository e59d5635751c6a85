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

// CommentsHandler manages comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// ListComments GET /comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// ListPostComments GET /posts/:id/comments.
func (h *CommentsHandler) ListPostComments(c *fiber.Ctx) error {
	comments, err := h.service.ListCommentsForPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponses(comments)})
}

// GetComment GET /comments/:id.
func (h *CommentsHandler) GetComment(c *fiber.Ctx) error {
	comment, err := h.service.GetComment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// CreateComment POST /comments.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PostID == "" || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("post_id and content required", nil)
	}

	comment, err := h.service.CreateComment(c.Context(), identity, service.CommentCreateInput{
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// UpdateComment PUT /comments/:id.
func (h *CommentsHandler) UpdateComment(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	comment, err := h.service.UpdateComment(c.Context(), identity, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// DeleteComment DELETE /comments/:id.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	comment, err := h.service.DeleteComment(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
		"comment": dto.NewCommentResponse(comment),
	})
}
