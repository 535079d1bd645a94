package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/dto"
)

// Author is the answer of GET /posts/:id/author
type Author struct {
	UserID int    `json:"userId"`
	Name   string `json:"name"`
}

// ListUsers returns all users ordered by id
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	slices.SortFunc(users, func(a, b domain.User) int { return a.ID - b.ID })
	return users, nil
}

// GetUser returns one user
func (c *Client) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user. It is never retried.
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser merges the set fields of req into the user
func (c *Client) UpdateUser(ctx context.Context, id int, req dto.UpdateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPatch, userPath(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

// ListUserPosts returns the user's posts, newest first
func (c *Client) ListUserPosts(ctx context.Context, userID int) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/posts", nil, &posts); err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// CheckUsername reports whether username is free, ignoring excludeID when set
func (c *Client) CheckUsername(ctx context.Context, username string, excludeID *int) (*domain.Availability, error) {
	return c.checkAvailability(ctx, "username", username, excludeID)
}

// CheckEmail reports whether email is free, ignoring excludeID when set
func (c *Client) CheckEmail(ctx context.Context, email string, excludeID *int) (*domain.Availability, error) {
	return c.checkAvailability(ctx, "email", email, excludeID)
}

func (c *Client) checkAvailability(ctx context.Context, field, value string, excludeID *int) (*domain.Availability, error) {
	q := url.Values{}
	q.Set(field, value)
	if excludeID != nil {
		q.Set("excludeId", strconv.Itoa(*excludeID))
	}

	var result domain.Availability
	if err := c.do(ctx, http.MethodGet, "/users/availability?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPosts returns all posts, newest first
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// GetPost returns one post
func (c *Client) GetPost(ctx context.Context, id int) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodGet, postPath(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post. It is never retried.
func (c *Client) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost merges the set fields of req into the post
func (c *Client) UpdatePost(ctx context.Context, id int, req dto.UpdatePostRequest) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodPatch, postPath(id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, postPath(id), nil, nil)
}

// SearchPosts returns posts whose title or body contains query.
// A blank query returns every post.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts/search?q="+url.QueryEscape(query), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostStats returns aggregate post counts
func (c *Client) PostStats(ctx context.Context) (*domain.PostStats, error) {
	var stats domain.PostStats
	if err := c.do(ctx, http.MethodGet, "/posts/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PostAuthor returns the display name of the post's author
func (c *Client) PostAuthor(ctx context.Context, postID int) (*Author, error) {
	var author Author
	if err := c.do(ctx, http.MethodGet, postPath(postID)+"/author", nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

func userPath(id int) string { return fmt.Sprintf("/users/%d", id) }

func postPath(id int) string { return fmt.Sprintf("/posts/%d", id) }

func sortNewestFirst(posts []domain.Post) {
	slices.SortFunc(posts, func(a, b domain.Post) int { return b.ID - a.ID })
}
