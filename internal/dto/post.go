package dto

import (
	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/service"
)

// CreatePostRequest represents the request to create a post.
// The author is not checked for existence.
type CreatePostRequest struct {
	UserID int    `json:"userId" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body,omitempty"`
}

// ToInput converts the request to a service input
func (r CreatePostRequest) ToInput() *service.PostInput {
	return &service.PostInput{
		UserID: r.UserID,
		Title:  r.Title,
		Body:   r.Body,
	}
}

// UpdatePostRequest represents a partial post update; absent fields are kept
type UpdatePostRequest struct {
	UserID *int    `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Body   *string `json:"body,omitempty"`
}

// ToPatch converts the request to a domain patch
func (r UpdatePostRequest) ToPatch() domain.PostPatch {
	return domain.PostPatch{
		UserID: r.UserID,
		Title:  r.Title,
		Body:   r.Body,
	}
}
