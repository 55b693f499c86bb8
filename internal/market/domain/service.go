package domain

import (
	"context"
	"errors"
	"time"
)

// Service serves the four national feeds. Each listing takes an inclusive
// [start, end] range and returns rows ascending by timestamp; the realtime
// consumption and SMP feeds are clamped by their freshness lags, the
// forecast and PTF feeds are not.
type Service interface {
	ListRealtimeConsumption(ctx context.Context, start, end time.Time) ([]ConsumptionPoint, error)
	ListDemandForecast(ctx context.Context, start, end time.Time) ([]ForecastPoint, error)
	ListMarketClearingPrice(ctx context.Context, start, end time.Time) ([]PricePoint, error)
	ListSystemMarginalPrice(ctx context.Context, start, end time.Time) ([]PricePoint, error)
}

type ConsumptionPoint struct {
	Timestamp         time.Time `json:"timestamp"`
	ActualConsumption float64   `json:"actual_consumption"`
}

type ForecastPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	DemandForecast float64   `json:"demand_forecast"`
}

type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

var ErrInvalidRange = errors.New("invalid_time_range")
