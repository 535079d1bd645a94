package service

import (
	"context"
	"fmt"

	"github.com/postboard/postboard/internal/domain"
)

// UserInput represents input for creating a user
type UserInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserService handles user operations
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List retrieves all users in insertion order
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Create creates a new user. Username and email uniqueness is not enforced.
func (s *UserService) Create(ctx context.Context, input *UserInput) (*domain.User, error) {
	user := &domain.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies patch to an existing user
func (s *UserService) Update(ctx context.Context, id int, patch domain.UserPatch) (*domain.User, error) {
	return s.userRepo.Update(ctx, id, patch)
}

// Delete deletes a user. Posts referencing the user are left in place.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}
