package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows a listing. At most one of PlantID / OrganizationID is
// set; nil fields mean no constraint.
type ListFilter struct {
	PlantID        *snowflake.ID
	OrganizationID *snowflake.ID
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateIfNoOpen inserts the event only if the plant has no open event,
	// atomically in the store. It reports whether the insert happened.
	CreateIfNoOpen(ctx context.Context, event PlantEvent) (bool, error)
	FindByID(ctx context.Context, id snowflake.ID) (*PlantEvent, error)
	HasOpen(ctx context.Context, plantID snowflake.ID) (bool, error)
	// Close sets end_time on an event that is still open. It reports whether
	// a row was updated; false means the event was already concluded.
	Close(ctx context.Context, id snowflake.ID, endTime time.Time) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]PlantEvent, error)
}
