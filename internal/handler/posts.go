package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/dto"
)

// PostsHandler handles post endpoints
type PostsHandler struct {
	postService  PostService
	queryService QueryService
	logger       *zap.Logger
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(postService PostService, queryService QueryService, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{
		postService:  postService,
		queryService: queryService,
		logger:       logger,
	}
}

// ListPosts handles GET /posts
func (h *PostsHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postService.List(c.Context())
	if err != nil {
		return handleError(c, h.logger, err, "list posts")
	}

	return c.JSON(posts)
}

// SearchPosts handles GET /posts/search?q=
func (h *PostsHandler) SearchPosts(c *fiber.Ctx) error {
	posts, err := h.queryService.SearchPosts(c.Context(), c.Query("q"))
	if err != nil {
		return handleError(c, h.logger, err, "search posts")
	}

	return c.JSON(posts)
}

// GetStats handles GET /posts/stats
func (h *PostsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.queryService.PostStats(c.Context())
	if err != nil {
		return handleError(c, h.logger, err, "get post stats")
	}

	return c.JSON(stats)
}

// GetPost handles GET /posts/:id
func (h *PostsHandler) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "get post")
	}

	post, err := h.postService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get post")
	}

	return c.JSON(post)
}

// GetAuthor handles GET /posts/:id/author
func (h *PostsHandler) GetAuthor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "get post author")
	}

	post, err := h.postService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get post author")
	}

	name, err := h.queryService.AuthorName(c.Context(), post.UserID)
	if err != nil {
		return handleError(c, h.logger, err, "get post author")
	}

	return c.JSON(fiber.Map{
		"userId": post.UserID,
		"name":   name,
	})
}

// CreatePost handles POST /posts.
// The author is stored as given, even if no such user exists.
func (h *PostsHandler) CreatePost(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err, "create post")
	}

	post, err := h.postService.Create(c.Context(), req.ToInput())
	if err != nil {
		return handleError(c, h.logger, err, "create post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT and PATCH /posts/:id
func (h *PostsHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "update post")
	}

	var req dto.UpdatePostRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err, "update post")
	}

	post, err := h.postService.Update(c.Context(), id, req.ToPatch())
	if err != nil {
		return handleError(c, h.logger, err, "update post")
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (h *PostsHandler) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "delete post")
	}

	if err := h.postService.Delete(c.Context(), id); err != nil {
		return handleError(c, h.logger, err, "delete post")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers post routes
func (h *PostsHandler) RegisterRoutes(router fiber.Router) {
	posts := router.Group("/posts")
	posts.Get("/", h.ListPosts)
	posts.Get("/search", h.SearchPosts)
	posts.Get("/stats", h.GetStats)
	posts.Post("/", h.CreatePost)
	posts.Get("/:id", h.GetPost)
	posts.Get("/:id/author", h.GetAuthor)
	posts.Put("/:id", h.UpdatePost)
	posts.Patch("/:id", h.UpdatePost)
	posts.Delete("/:id", h.DeletePost)
}
