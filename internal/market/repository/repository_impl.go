package repository

import (
	"context"
	"time"

	"github.com/gridpeak/voltra/internal/market/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListConsumption(ctx context.Context, start, end time.Time) ([]domain.NationalConsumption, error) {
	var rows []domain.NationalConsumption
	err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListPrices(ctx context.Context, start, end time.Time) ([]domain.MarketPrice, error) {
	var rows []domain.MarketPrice
	err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
