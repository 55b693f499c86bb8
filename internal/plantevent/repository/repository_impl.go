package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/plantevent/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

// CreateIfNoOpen relies on the store to serialize concurrent starts: the
// guarded insert and the partial unique index on (power_plant_id) WHERE
// end_time IS NULL together guarantee at most one open event per plant.
func (r *repository) CreateIfNoOpen(ctx context.Context, event domain.PlantEvent) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO plant_events (id, event_type, reason, description, affected_capacity, start_time, end_time, power_plant_id)
		 SELECT ?, ?, ?, ?, ?, ?, NULL, ?
		 WHERE NOT EXISTS (
		 	SELECT 1 FROM plant_events WHERE power_plant_id = ? AND end_time IS NULL
		 )`,
		event.ID,
		event.EventType,
		event.Reason,
		event.Description,
		event.AffectedCapacity,
		event.StartTime,
		event.PowerPlantID,
		event.PowerPlantID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.PlantEvent, error) {
	var event domain.PlantEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) HasOpen(ctx context.Context, plantID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PlantEvent{}).
		Where("power_plant_id = ? AND end_time IS NULL", plantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Close(ctx context.Context, id snowflake.ID, endTime time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE plant_events SET end_time = ? WHERE id = ? AND end_time IS NULL`,
		endTime,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.PlantEvent, error) {
	q := r.db.WithContext(ctx).Model(&domain.PlantEvent{})
	switch {
	case filter.PlantID != nil:
		q = q.Where("plant_events.power_plant_id = ?", *filter.PlantID)
	case filter.OrganizationID != nil:
		q = q.Joins("JOIN power_plants ON power_plants.id = plant_events.power_plant_id").
			Where("power_plants.organization_id = ?", *filter.OrganizationID)
	}

	var events []domain.PlantEvent
	if err := q.Order("plant_events.start_time DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
