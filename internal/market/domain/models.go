// Package domain contains persistence models for the national market feeds.
// Both tables are tenant-independent: every authenticated role may read
// them, subject only to the feed visibility windows.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MarketPrice holds one settlement interval's clearing price (PTF) and
// system marginal price (SMF).
type MarketPrice struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Timestamp time.Time    `gorm:"not null;uniqueIndex:ux_market_prices_ts" json:"timestamp"`
	PricePTF  float64      `gorm:"column:price_ptf" json:"price_ptf"`
	PriceSMF  float64      `gorm:"column:price_smf" json:"price_smf"`
}

// TableName sets the database table name.
func (MarketPrice) TableName() string { return "market_prices" }

// NationalConsumption holds one interval's measured national consumption and
// its day-ahead demand forecast.
type NationalConsumption struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	Timestamp         time.Time    `gorm:"not null;uniqueIndex:ux_national_consumption_ts" json:"timestamp"`
	ActualConsumption float64      `json:"actual_consumption"`
	DemandForecast    float64      `json:"demand_forecast"`
}

// TableName sets the database table name.
func (NationalConsumption) TableName() string { return "national_consumption" }
