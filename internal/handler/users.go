package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/dto"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
)

// UsersHandler handles user endpoints
type UsersHandler struct {
	userService  UserService
	postService  PostService
	queryService QueryService
	logger       *zap.Logger
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(userService UserService, postService PostService, queryService QueryService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService:  userService,
		postService:  postService,
		queryService: queryService,
		logger:       logger,
	}
}

// ListUsers handles GET /users
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return handleError(c, h.logger, err, "list users")
	}

	return c.JSON(users)
}

// GetUser handles GET /users/:id
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "get user")
	}

	user, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "get user")
	}

	return c.JSON(user)
}

// ListUserPosts handles GET /users/:id/posts.
// An unknown user yields an empty list.
func (h *UsersHandler) ListUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "list user posts")
	}

	posts, err := h.postService.ListByUser(c.Context(), id)
	if err != nil {
		return handleError(c, h.logger, err, "list user posts")
	}

	return c.JSON(posts)
}

// CreateUser handles POST /users
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err, "create user")
	}

	user, err := h.userService.Create(c.Context(), req.ToInput())
	if err != nil {
		return handleError(c, h.logger, err, "create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT and PATCH /users/:id; both merge only the supplied fields
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "update user")
	}

	var req dto.UpdateUserRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err, "update user")
	}

	user, err := h.userService.Update(c.Context(), id, req.ToPatch())
	if err != nil {
		return handleError(c, h.logger, err, "update user")
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id.
// Posts written by the user are kept.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleError(c, h.logger, err, "delete user")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return handleError(c, h.logger, err, "delete user")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CheckAvailability handles GET /users/availability?username=|email=[&excludeId=]
func (h *UsersHandler) CheckAvailability(c *fiber.Ctx) error {
	excludeID, err := parseOptionalID(c, "excludeId")
	if err != nil {
		return handleError(c, h.logger, err, "check availability")
	}

	username, email := c.Query("username"), c.Query("email")

	var result domain.Availability
	switch {
	case username != "" && email != "":
		return handleError(c, h.logger, apperrors.BadRequest("Specify either username or email, not both"), "check availability")
	case username != "":
		result.Field, result.Value = "username", username
		result.Available, err = h.queryService.IsUsernameAvailable(c.Context(), username, excludeID)
	case email != "":
		result.Field, result.Value = "email", email
		result.Available, err = h.queryService.IsEmailAvailable(c.Context(), email, excludeID)
	default:
		return handleError(c, h.logger, apperrors.BadRequest("username or email is required"), "check availability")
	}
	if err != nil {
		return handleError(c, h.logger, err, "check availability")
	}

	return c.JSON(result)
}

// RegisterRoutes registers user routes.
// Static segments are registered before /:id so they are not parsed as ids.
func (h *UsersHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/", h.ListUsers)
	users.Get("/availability", h.CheckAvailability)
	users.Post("/", h.CreateUser)
	users.Get("/:id", h.GetUser)
	users.Get("/:id/posts", h.ListUserPosts)
	users.Put("/:id", h.UpdateUser)
	users.Patch("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)
}
