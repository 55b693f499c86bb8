package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

type Service interface {
	Create(ctx context.Context, req CreatePlantRequest) (*PlantResponse, error)
	List(ctx context.Context, actor identity.Identity, organizationID *snowflake.ID) ([]PlantResponse, error)
	// Resolve loads a plant without tenant filtering; callers apply their own
	// scope checks and concealment.
	Resolve(ctx context.Context, id snowflake.ID) (*PowerPlant, error)
}

type CreatePlantRequest struct {
	Name              string
	EIC               string
	InstalledCapacity float64
	FuelType          string
	OrganizationName  string
	IsYekdem          bool
	IsRes             bool
}

type PlantResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	EIC               string  `json:"eic"`
	InstalledCapacity float64 `json:"installed_capacity"`
	FuelType          string  `json:"fuel_type"`
	IsYekdem          bool    `json:"is_yekdem"`
	IsRes             bool    `json:"is_res"`
	CurrentStatus     string  `json:"current_status"`
	OrganizationID    string  `json:"organization_id"`
}

var (
	ErrInvalidName     = errors.New("invalid_plant_name")
	ErrInvalidEIC      = errors.New("invalid_plant_eic")
	ErrInvalidCapacity = errors.New("invalid_installed_capacity")
	ErrAlreadyExists   = errors.New("plant_exists")
	// ErrNotFound covers both a genuinely missing plant and a plant outside
	// the caller's tenant; the two must stay indistinguishable.
	ErrNotFound = errors.New("plant_not_found")
)
