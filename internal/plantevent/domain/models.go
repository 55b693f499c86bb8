// Package domain contains persistence models for plant events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Event types. An open event of either type overrides the plant's Active
// status until it is finished.
const (
	EventTypeMaintenance = "Maintenance"
	EventTypeFailure     = "Failure"
)

// Derived presentation statuses. Not stored: computed from end_time on read.
const (
	StatusOngoing   = "continue"
	StatusCompleted = "completed"
)

// PlantEvent records an outage or maintenance window on a plant. A null
// end_time marks the event as open; at most one open event may exist per
// plant at any time. Events are never deleted.
type PlantEvent struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	EventType        string       `gorm:"type:text;not null" json:"event_type"`
	Reason           string       `gorm:"type:text;not null" json:"reason"`
	Description      string       `gorm:"type:text" json:"description"`
	AffectedCapacity float64      `gorm:"not null" json:"affected_capacity"`
	StartTime        time.Time    `gorm:"not null;index" json:"start_time"`
	EndTime          *time.Time   `json:"end_time"`
	PowerPlantID     snowflake.ID `gorm:"not null;index" json:"power_plant_id"`
}

// TableName sets the database table name.
func (PlantEvent) TableName() string { return "plant_events" }

// ValidEventType reports whether t names a known event type.
func ValidEventType(t string) bool {
	return t == EventTypeMaintenance || t == EventTypeFailure
}
