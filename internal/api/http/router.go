package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Posts          *handlers.PostsHandler
	Comments       *handlers.CommentsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Reads are public; every mutation runs
// through the authentication gate, and post creation additionally through
// the author role gate. Ownership checks happen after resource load.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	posts := app.Group("/posts")
	posts.Get("/", cfg.Posts.ListPosts)
	posts.Get("/:id", cfg.Posts.GetPost)
	posts.Get("/:id/comments", cfg.Comments.ListPostComments)
	posts.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAuthor), cfg.Posts.CreatePost)
	posts.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Posts.UpdatePost)
	posts.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Posts.DeletePost)

	comments := app.Group("/comments")
	comments.Get("/", cfg.Comments.ListComments)
	comments.Get("/:id", cfg.Comments.GetComment)
	comments.Post("/", cfg.AuthMiddleware.Handle, cfg.Comments.CreateComment)
	comments.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Comments.UpdateComment)
	comments.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Comments.DeleteComment)

	users := app.Group("/users")
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.DeleteUser)
}
