package service

import (
	"context"
	"time"

	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/market/domain"
	"github.com/gridpeak/voltra/internal/timewindow"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Repo   domain.Repository
	Policy *timewindow.Policy
	Clock  clock.Clock
}

type service struct {
	repo   domain.Repository
	policy *timewindow.Policy
	clock  clock.Clock
}

func NewService(p Params) domain.Service {
	return &service{repo: p.Repo, policy: p.Policy, clock: p.Clock}
}

func (s *service) ListRealtimeConsumption(ctx context.Context, start, end time.Time) ([]domain.ConsumptionPoint, error) {
	window, ok, err := s.clampRange(timewindow.FeedRealtimeConsumption, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ConsumptionPoint{}, nil
	}

	rows, err := s.repo.ListConsumption(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	points := make([]domain.ConsumptionPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.ConsumptionPoint{
			Timestamp:         row.Timestamp,
			ActualConsumption: row.ActualConsumption,
		})
	}
	return points, nil
}

func (s *service) ListDemandForecast(ctx context.Context, start, end time.Time) ([]domain.ForecastPoint, error) {
	window, ok, err := s.clampRange(timewindow.FeedDemandForecast, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ForecastPoint{}, nil
	}

	rows, err := s.repo.ListConsumption(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	points := make([]domain.ForecastPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.ForecastPoint{
			Timestamp:      row.Timestamp,
			DemandForecast: row.DemandForecast,
		})
	}
	return points, nil
}

func (s *service) ListMarketClearingPrice(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	return s.listPrices(ctx, timewindow.FeedMarketClearingPrice, start, end, func(p domain.MarketPrice) float64 {
		return p.PricePTF
	})
}

func (s *service) ListSystemMarginalPrice(ctx context.Context, start, end time.Time) ([]domain.PricePoint, error) {
	return s.listPrices(ctx, timewindow.FeedSystemMarginalPrice, start, end, func(p domain.MarketPrice) float64 {
		return p.PriceSMF
	})
}

func (s *service) listPrices(ctx context.Context, feed timewindow.Feed, start, end time.Time, value func(domain.MarketPrice) float64) ([]domain.PricePoint, error) {
	window, ok, err := s.clampRange(feed, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.PricePoint{}, nil
	}

	rows, err := s.repo.ListPrices(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	points := make([]domain.PricePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, domain.PricePoint{Timestamp: row.Timestamp, Price: value(row)})
	}
	return points, nil
}

// clampRange validates the request and applies the feed's visibility window.
// ok=false means the window is empty and the caller must return zero rows
// without reading the store.
func (s *service) clampRange(feed timewindow.Feed, start, end time.Time) (timewindow.Range, bool, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return timewindow.Range{}, false, domain.ErrInvalidRange
	}
	window, ok := s.policy.Clamp(feed, start, end, s.clock.Now())
	return window, ok, nil
}
