package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/postboard/postboard/internal/domain"
	apperrors "github.com/postboard/postboard/internal/pkg/errors"
)

// QueryService answers derived, read-only questions over users and posts
type QueryService struct {
	userRepo UserRepository
	postRepo PostRepository
}

// NewQueryService creates a new query service
func NewQueryService(userRepo UserRepository, postRepo PostRepository) *QueryService {
	return &QueryService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// SearchPosts returns posts whose title or body contains query, ignoring case.
// A blank query returns every post.
func (s *QueryService) SearchPosts(ctx context.Context, query string) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return posts, nil
	}

	matches := make([]domain.Post, 0)
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Body), term) {
			matches = append(matches, p)
		}
	}

	return matches, nil
}

// PostStats counts posts per author.
// The average is taken over authors with at least one post and rounded to one decimal.
func (s *QueryService) PostStats(ctx context.Context) (*domain.PostStats, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	stats := &domain.PostStats{
		TotalPosts:  len(posts),
		PostsByUser: make(map[int]int),
	}
	for _, p := range posts {
		stats.PostsByUser[p.UserID]++
	}

	if authors := len(stats.PostsByUser); authors > 0 {
		avg := float64(stats.TotalPosts) / float64(authors)
		stats.AveragePostsPerUser = math.Round(avg*10) / 10
	}

	return stats, nil
}

// IsUsernameAvailable reports whether no user other than excludeID holds username
func (s *QueryService) IsUsernameAvailable(ctx context.Context, username string, excludeID *int) (bool, error) {
	return s.isAvailable(ctx, excludeID, func(u domain.User) string { return u.Username }, username)
}

// IsEmailAvailable reports whether no user other than excludeID holds email
func (s *QueryService) IsEmailAvailable(ctx context.Context, email string, excludeID *int) (bool, error) {
	return s.isAvailable(ctx, excludeID, func(u domain.User) string { return u.Email }, email)
}

func (s *QueryService) isAvailable(ctx context.Context, excludeID *int, field func(domain.User) string, value string) (bool, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if strings.EqualFold(field(u), value) {
			return false, nil
		}
	}

	return true, nil
}

// AuthorName returns the name of the user with userID.
// Posts may reference deleted or never-existing users, which resolve to a placeholder.
func (s *QueryService) AuthorName(ctx context.Context, userID int) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if kind, _, ok := apperrors.MissingRecord(err); ok && kind == apperrors.KindUser {
			return fmt.Sprintf("Unknown User (%d)", userID), nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	return user.Name, nil
}
