package handler

import (
	"context"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/service"
)

// UserService is the user operations the HTTP layer needs
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, input *service.UserInput) (*domain.User, error)
	Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// PostService is the post operations the HTTP layer needs
type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Post, error)
	Get(ctx context.Context, id int) (*domain.Post, error)
	Create(ctx context.Context, input *service.PostInput) (*domain.Post, error)
	Update(ctx context.Context, id int, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id int) error
}

// QueryService is the derived read operations the HTTP layer needs
type QueryService interface {
	SearchPosts(ctx context.Context, query string) ([]domain.Post, error)
	PostStats(ctx context.Context) (*domain.PostStats, error)
	IsUsernameAvailable(ctx context.Context, username string, excludeID *int) (bool, error)
	IsEmailAvailable(ctx context.Context, email string, excludeID *int) (bool, error)
	AuthorName(ctx context.Context, userID int) (string, error)
}

var (
	_ UserService  = (*service.UserService)(nil)
	_ PostService  = (*service.PostService)(nil)
	_ QueryService = (*service.QueryService)(nil)
)
