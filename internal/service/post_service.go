package service

import (
	"context"
	"fmt"

	"github.com/postboard/postboard/internal/domain"
)

// PostInput represents input for creating a post
type PostInput struct {
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
}

// PostService handles post operations
type PostService struct {
	postRepo PostRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// List retrieves all posts in insertion order
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListByUser retrieves the posts written by a user
func (s *PostService) ListByUser(ctx context.Context, userID int) ([]domain.Post, error) {
	posts, err := s.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for user %d: %w", userID, err)
	}
	return posts, nil
}

// Get retrieves a post by ID
func (s *PostService) Get(ctx context.Context, id int) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Create creates a new post. The author id is stored without a lookup.
func (s *PostService) Create(ctx context.Context, input *PostInput) (*domain.Post, error) {
	post := &domain.Post{
		UserID: input.UserID,
		Title:  input.Title,
		Body:   input.Body,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// Update applies patch to an existing post
func (s *PostService) Update(ctx context.Context, id int, patch domain.PostPatch) (*domain.Post, error) {
	return s.postRepo.Update(ctx, id, patch)
}

// Delete deletes a post
func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.postRepo.Delete(ctx, id)
}
