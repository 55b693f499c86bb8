// Package timewindow decides how much of each data feed may be exposed at a
// given moment. Every feed carries a freshness lag that models the
// measurement or settlement delay of the underlying market process; data
// younger than the lag is withheld.
package timewindow

import "time"

// Feed identifies one of the published data feeds.
type Feed string

const (
	FeedRealtimeConsumption Feed = "realtime_consumption"
	FeedRealtimeGeneration  Feed = "realtime_generation"
	FeedSystemMarginalPrice Feed = "system_marginal_price"
	FeedMarketClearingPrice Feed = "market_clearing_price"
	FeedDemandForecast      Feed = "demand_forecast"
)

// Range is a closed [Start, End] interval. Start never exceeds End.
type Range struct {
	Start time.Time
	End   time.Time
}

// Config carries the tunable lags. Zero values fall back to the defaults.
type Config struct {
	ConsumptionLag time.Duration
	SMPLag         time.Duration
}

const (
	DefaultConsumptionLag = 2 * time.Hour
	DefaultSMPLag         = 4 * time.Hour
)

// Policy computes visibility limits per feed.
type Policy struct {
	source func() Config
}

func NewPolicy(cfg Config) *Policy {
	return &Policy{source: func() Config { return cfg }}
}

// NewDynamicPolicy reads the lags through source on every decision, so a
// hot-reloaded configuration takes effect without rebuilding the policy.
func NewDynamicPolicy(source func() Config) *Policy {
	return &Policy{source: source}
}

func (p *Policy) lags() Config {
	cfg := p.source()
	if cfg.ConsumptionLag <= 0 {
		cfg.ConsumptionLag = DefaultConsumptionLag
	}
	if cfg.SMPLag <= 0 {
		cfg.SMPLag = DefaultSMPLag
	}
	return cfg
}

// Limit returns the newest timestamp the feed may expose at "now". The second
// return is false for forward-looking or unrestricted feeds, which have no
// limit at all.
//
// Generation figures finalize only after the trading day closes, so the
// generation feed is limited to the last instant of the previous day in
// now's location.
func (p *Policy) Limit(feed Feed, now time.Time) (time.Time, bool) {
	lags := p.lags()
	switch feed {
	case FeedRealtimeConsumption:
		return now.Add(-lags.ConsumptionLag), true
	case FeedSystemMarginalPrice:
		return now.Add(-lags.SMPLag), true
	case FeedRealtimeGeneration:
		y, m, d := now.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		return midnight.Add(-time.Second), true
	default:
		return time.Time{}, false
	}
}

// Clamp truncates the requested closed range so it never exposes data newer
// than the feed's limit. The boolean is false when the caller asked entirely
// for not-yet-available data; such a request is valid and must produce an
// empty result without touching the data store. Clamping is idempotent:
// clamping an already-clamped range returns it unchanged.
func (p *Policy) Clamp(feed Feed, start, end, now time.Time) (Range, bool) {
	limit, bounded := p.Limit(feed, now)
	if !bounded {
		return Range{Start: start, End: end}, true
	}
	if start.After(limit) {
		return Range{}, false
	}
	if end.After(limit) {
		end = limit
	}
	return Range{Start: start, End: end}, true
}
