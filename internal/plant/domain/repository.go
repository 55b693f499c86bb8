package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, plant PowerPlant) error
	FindByID(ctx context.Context, id snowflake.ID) (*PowerPlant, error)
	ListAll(ctx context.Context) ([]PowerPlant, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]PowerPlant, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) error
}
