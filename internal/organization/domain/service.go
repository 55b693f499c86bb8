package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error)
	List(ctx context.Context) ([]OrganizationResponse, error)
	ResolveByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	ResolveByName(ctx context.Context, name string) (*Organization, error)
}

type CreateOrganizationRequest struct {
	Name string
	EIC  string
}

type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EIC       string    `json:"eic"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidEIC    = errors.New("invalid_eic")
	ErrAlreadyExists = errors.New("organization_exists")
	ErrNotFound      = errors.New("organization_not_found")
)
