package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gridpeak/voltra/internal/plant/domain"
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

func (r *repository) Create(ctx context.Context, plant domain.PowerPlant) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO power_plants (id, name, eic, installed_capacity, fuel_type, is_yekdem, is_res, current_status, organization_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plant.ID,
		plant.Name,
		plant.EIC,
		plant.InstalledCapacity,
		plant.FuelType,
		plant.IsYekdem,
		plant.IsRes,
		plant.CurrentStatus,
		plant.OrganizationID,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.PowerPlant, error) {
	var plant domain.PowerPlant
	if err := r.db.WithContext(ctx).First(&plant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *repository) ListAll(ctx context.Context) ([]domain.PowerPlant, error) {
	var plants []domain.PowerPlant
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *repository) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.PowerPlant, error) {
	var plants []domain.PowerPlant
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&plants).Error
	if err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id snowflake.ID, status string) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE power_plants SET current_status = ? WHERE id = ?`,
		status,
		id,
	).Error
}
