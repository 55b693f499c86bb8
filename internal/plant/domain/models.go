// Package domain contains persistence models for the power plant service.
package domain

import (
	"github.com/bwmarrin/snowflake"
)

// Plant status values. CurrentStatus is a materialized projection of the
// plant's open event: it equals the open event's type, or Active when no
// event is open. It is recomputed transactionally with every event write and
// never trusted as an independent source of truth.
const (
	StatusActive      = "Active"
	StatusMaintenance = "Maintenance"
	StatusFailure     = "Failure"
)

// PowerPlant is a generation asset owned by one organization.
type PowerPlant struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	Name              string       `gorm:"type:text;not null;index" json:"name"`
	EIC               string       `gorm:"column:eic;type:text;not null;uniqueIndex:ux_power_plants_eic" json:"eic"`
	InstalledCapacity float64      `gorm:"not null" json:"installed_capacity"`
	FuelType          string       `gorm:"type:text" json:"fuel_type"`
	IsYekdem          bool         `gorm:"default:false" json:"is_yekdem"`
	IsRes             bool         `gorm:"default:false" json:"is_res"`
	CurrentStatus     string       `gorm:"type:text;not null;default:Active" json:"current_status"`
	OrganizationID    snowflake.ID `gorm:"not null;index" json:"organization_id"`
}

// TableName sets the database table name.
func (PowerPlant) TableName() string { return "power_plants" }
