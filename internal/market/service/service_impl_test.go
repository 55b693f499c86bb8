package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridpeak/voltra/internal/clock"
	"github.com/gridpeak/voltra/internal/market/domain"
	"github.com/gridpeak/voltra/internal/timewindow"
)

type stubRepo struct {
	consumptionCalls int
	priceCalls       int
	lastStart        time.Time
	lastEnd          time.Time
	consumption      []domain.NationalConsumption
	prices           []domain.MarketPrice
}

func (r *stubRepo) ListConsumption(_ context.Context, start, end time.Time) ([]domain.NationalConsumption, error) {
	r.consumptionCalls++
	r.lastStart, r.lastEnd = start, end
	return r.consumption, nil
}

func (r *stubRepo) ListPrices(_ context.Context, start, end time.Time) ([]domain.MarketPrice, error) {
	r.priceCalls++
	r.lastStart, r.lastEnd = start, end
	return r.prices, nil
}

func setupMarketService(now time.Time) (domain.Service, *stubRepo) {
	repo := &stubRepo{}
	svc := NewService(Params{
		Repo:   repo,
		Policy: timewindow.NewPolicy(timewindow.Config{}),
		Clock:  clock.NewFakeClock(now),
	})
	return svc, repo
}

func TestRealtimeConsumptionFreshRangeIsEmpty(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)

	// Everything inside the last two hours is still settling; the request
	// is answered empty without touching the store.
	points, err := svc.ListRealtimeConsumption(context.Background(), now.Add(-time.Hour), now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected empty result, got %d points", len(points))
	}
	if repo.consumptionCalls != 0 {
		t.Fatalf("expected zero store reads, got %d", repo.consumptionCalls)
	}
}

func TestRealtimeConsumptionClampsEnd(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)
	repo.consumption = []domain.NationalConsumption{
		{Timestamp: now.Add(-5 * time.Hour), ActualConsumption: 41000},
	}

	points, err := svc.ListRealtimeConsumption(context.Background(), now.Add(-6*time.Hour), now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 1 || points[0].ActualConsumption != 41000 {
		t.Fatalf("unexpected points: %+v", points)
	}
	if !repo.lastEnd.Equal(now.Add(-2 * time.Hour)) {
		t.Fatalf("expected end clamped to now-2h, got %v", repo.lastEnd)
	}
}

func TestSystemMarginalPriceClampsEnd(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)
	repo.prices = []domain.MarketPrice{
		{Timestamp: now.Add(-6 * time.Hour), PricePTF: 2100, PriceSMF: 2350},
	}

	points, err := svc.ListSystemMarginalPrice(context.Background(), now.Add(-8*time.Hour), now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 1 || points[0].Price != 2350 {
		t.Fatalf("expected SMF value, got %+v", points)
	}
	if !repo.lastEnd.Equal(now.Add(-4 * time.Hour)) {
		t.Fatalf("expected end clamped to now-4h, got %v", repo.lastEnd)
	}
}

func TestMarketClearingPriceUnclamped(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)
	repo.prices = []domain.MarketPrice{
		{Timestamp: now.Add(6 * time.Hour), PricePTF: 1900, PriceSMF: 2000},
	}

	// Day-ahead prices are published in advance; the feed has no lag.
	end := now.Add(10 * time.Hour)
	points, err := svc.ListMarketClearingPrice(context.Background(), now, end)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 1 || points[0].Price != 1900 {
		t.Fatalf("expected PTF value, got %+v", points)
	}
	if !repo.lastEnd.Equal(end) {
		t.Fatalf("expected end untouched, got %v", repo.lastEnd)
	}
}

func TestDemandForecastUnclamped(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)
	repo.consumption = []domain.NationalConsumption{
		{Timestamp: now.Add(12 * time.Hour), DemandForecast: 39000},
	}

	end := now.Add(24 * time.Hour)
	points, err := svc.ListDemandForecast(context.Background(), now, end)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(points) != 1 || points[0].DemandForecast != 39000 {
		t.Fatalf("unexpected points: %+v", points)
	}
	if !repo.lastEnd.Equal(end) {
		t.Fatalf("expected end untouched, got %v", repo.lastEnd)
	}
}

func TestInvalidRangeRejected(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	svc, repo := setupMarketService(now)

	_, err := svc.ListRealtimeConsumption(context.Background(), now, now.Add(-time.Hour))
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if repo.consumptionCalls != 0 {
		t.Fatalf("expected zero store reads, got %d", repo.consumptionCalls)
	}
}
