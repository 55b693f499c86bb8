package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RangeFilter bounds a listing. The [Start, End] interval is inclusive and
// already clamped by the caller; at most one of PlantID / OrganizationID is
// set.
type RangeFilter struct {
	Start          time.Time
	End            time.Time
	PlantID        *snowflake.ID
	OrganizationID *snowflake.ID
}

type Repository interface {
	ListRange(ctx context.Context, filter RangeFilter) ([]Row, error)
}
