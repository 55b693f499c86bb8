package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, org Organization) error
	List(ctx context.Context) ([]Organization, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	FindByName(ctx context.Context, name string) (*Organization, error)
}
