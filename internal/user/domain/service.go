package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
}

type CreateUserRequest struct {
	Username       string
	Password       string
	FirstName      string
	LastName       string
	Email          string
	Role           identity.Role
	OrganizationID snowflake.ID
}

type UserResponse struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	Role           identity.Role `json:"role"`
	OrganizationID string        `json:"organization_id"`
}

var (
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrAlreadyExists   = errors.New("user_exists")
	ErrNotFound        = errors.New("user_not_found")
)
