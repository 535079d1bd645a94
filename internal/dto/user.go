package dto

import (
	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/service"
)

// CreateUserRequest represents the request to create a user.
// A client-supplied id is not part of the contract and is dropped.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

// ToInput converts the request to a service input
func (r CreateUserRequest) ToInput() *service.UserInput {
	return &service.UserInput{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
	}
}

// UpdateUserRequest represents a partial user update; absent fields are kept
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ToPatch converts the request to a domain patch
func (r UpdateUserRequest) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
	}
}
