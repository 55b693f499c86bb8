// Package domain contains persistence models for plant generation readings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// GenerationData is one measurement record per plant per timestamp, written
// by upstream ingestion and immutable afterwards.
type GenerationData struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	Timestamp            time.Time    `gorm:"not null;uniqueIndex:ux_generation_plant_ts" json:"timestamp"`
	ActualGeneration     float64      `json:"actual_generation"`
	PlannedGeneration    float64      `json:"planned_generation"`
	SettlementGeneration float64      `json:"settlement_generation"`
	PowerPlantID         snowflake.ID `gorm:"not null;uniqueIndex:ux_generation_plant_ts;index" json:"power_plant_id"`
}

// TableName sets the database table name.
func (GenerationData) TableName() string { return "generation_data" }

// Row is a reading joined with its plant's descriptive fields for display.
type Row struct {
	ID                   snowflake.ID `json:"id"`
	Timestamp            time.Time    `json:"timestamp"`
	ActualGeneration     float64      `json:"actual_generation"`
	PlannedGeneration    float64      `json:"planned_generation"`
	SettlementGeneration float64      `json:"settlement_generation"`
	PowerPlantID         snowflake.ID `json:"power_plant_id"`
	PlantName            string       `json:"plant_name"`
	EIC                  string       `gorm:"column:eic" json:"eic"`
	FuelType             string       `json:"fuel_type"`
}
