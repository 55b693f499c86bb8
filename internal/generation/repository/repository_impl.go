package repository

import (
	"context"

	"github.com/gridpeak/voltra/internal/generation/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListRange(ctx context.Context, filter domain.RangeFilter) ([]domain.Row, error) {
	q := r.db.WithContext(ctx).
		Table("generation_data").
		Select(`generation_data.id,
			generation_data.timestamp,
			generation_data.actual_generation,
			generation_data.planned_generation,
			generation_data.settlement_generation,
			generation_data.power_plant_id,
			power_plants.name AS plant_name,
			power_plants.eic AS eic,
			power_plants.fuel_type AS fuel_type`).
		Joins("JOIN power_plants ON power_plants.id = generation_data.power_plant_id").
		Where("generation_data.timestamp >= ? AND generation_data.timestamp <= ?", filter.Start, filter.End)

	switch {
	case filter.PlantID != nil:
		q = q.Where("generation_data.power_plant_id = ?", *filter.PlantID)
	case filter.OrganizationID != nil:
		q = q.Where("power_plants.organization_id = ?", *filter.OrganizationID)
	}

	var rows []domain.Row
	if err := q.Order("generation_data.timestamp ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
