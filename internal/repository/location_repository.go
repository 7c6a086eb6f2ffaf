package repository

import (
	"context"

	"gorm.io/gorm"

	"parampara/internal/model"
)

// LocationRepository defines location persistence operations. The table is
// append-only, so there are no update or delete methods.
type LocationRepository interface {
	Create(ctx context.Context, record *model.LocationRecord) error
	Latest(ctx context.Context, userID uint) (*model.LocationRecord, error)
	ListByUser(ctx context.Context, userID uint) ([]model.LocationRecord, error)
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository builds a GORM-backed repository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, record *model.LocationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *locationRepository) Latest(ctx context.Context, userID uint) (*model.LocationRecord, error) {
	var record model.LocationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *locationRepository) ListByUser(ctx context.Context, userID uint) ([]model.LocationRecord, error) {
	var records []model.LocationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
