package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/identity"
)

type Service interface {
	// Start opens a new event on a plant and mirrors its type into the
	// plant's current_status. Failure modes are checked in a fixed order:
	// missing or out-of-tenant plant, insufficient role, an already-open
	// event, then an affected capacity above the installed capacity.
	Start(ctx context.Context, actor identity.Identity, req StartEventRequest) (*EventResponse, error)
	// Finish closes an open event and restores the plant to Active.
	Finish(ctx context.Context, actor identity.Identity, eventID snowflake.ID) (*EventResponse, error)
	// List returns events visible to the actor, newest first.
	List(ctx context.Context, actor identity.Identity, powerPlantID *snowflake.ID) ([]EventResponse, error)
}

type StartEventRequest struct {
	PowerPlantID     snowflake.ID
	EventType        string
	Reason           string
	Description      string
	AffectedCapacity float64
}

type EventResponse struct {
	ID               string  `json:"id"`
	EventType        string  `json:"event_type"`
	Reason           string  `json:"reason"`
	Description      string  `json:"description,omitempty"`
	AffectedCapacity float64 `json:"affected_capacity"`
	StartTime        string  `json:"start_time"`
	EndTime          *string `json:"end_time"`
	PowerPlantID     string  `json:"power_plant_id"`
	// Status is derived on read: "continue" while the event is open,
	// "completed" once end_time is set.
	Status string `json:"status"`
}

var (
	ErrInvalidEventType = errors.New("invalid_event_type")
	ErrInvalidReason    = errors.New("invalid_event_reason")
	ErrInvalidCapacity  = errors.New("invalid_affected_capacity")
	ErrCapacityExceeded = errors.New("affected_capacity_exceeds_installed")
	ErrOpenEventExists  = errors.New("open_event_exists")
	ErrAlreadyConcluded = errors.New("event_already_concluded")
	// ErrNotFound covers both a genuinely missing event and an event whose
	// plant is outside the caller's tenant; the two must stay
	// indistinguishable.
	ErrNotFound = errors.New("plant_event_not_found")
)
