package service

import (
	"context"

	"github.com/postboard/postboard/internal/domain"
)

// UserRepository defines user store operations
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// PostRepository defines post store operations
type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	ListByUserID(ctx context.Context, userID int) ([]domain.Post, error)
	GetByID(ctx context.Context, id int) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, id int, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id int) error
}
