package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

type Service interface {
	// List returns generation readings visible to the actor within the
	// requested range, after tenant scoping and feed-window clamping,
	// ascending by timestamp.
	List(ctx context.Context, actor identity.Identity, req ListRequest) ([]RowResponse, error)
}

type ListRequest struct {
	Start          time.Time
	End            time.Time
	PowerPlantID   *snowflake.ID
	OrganizationID *snowflake.ID
}

type RowResponse struct {
	ID                   string    `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	ActualGeneration     float64   `json:"actual_generation"`
	PlannedGeneration    float64   `json:"planned_generation"`
	SettlementGeneration float64   `json:"settlement_generation"`
	PowerPlantID         string    `json:"power_plant_id"`
	PlantName            string    `json:"plant_name"`
	EIC                  string    `json:"eic"`
	FuelType             string    `json:"fuel_type"`
}

var ErrInvalidRange = errors.New("invalid_time_range")
