package domain

import (
	"context"
	"time"
)

type Repository interface {
	ListConsumption(ctx context.Context, start, end time.Time) ([]NationalConsumption, error)
	ListPrices(ctx context.Context, start, end time.Time) ([]MarketPrice, error)
}
