package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"parampara/internal/errors"
	"parampara/internal/model"
	"parampara/internal/repository"
)

// LocationService records and reads back contributor locations.
type LocationService interface {
	Record(ctx context.Context, userID uint, lat, lng *float64, address *string) (*model.LocationRecord, error)
	Latest(ctx context.Context, userID uint) (*model.LocationRecord, error)
}

type locationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new location service.
func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

// Record appends a location record. Coordinates must be supplied together and
// within geographic range; a record with neither coordinates nor address is
// rejected.
func (s *locationService) Record(ctx context.Context, userID uint, lat, lng *float64, address *string) (*model.LocationRecord, error) {
	if (lat == nil) != (lng == nil) {
		return nil, errors.ErrInvalidInput
	}
	if lat != nil {
		if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
			return nil, errors.ErrInvalidInput
		}
	}
	if address != nil {
		trimmed := strings.TrimSpace(*address)
		if trimmed == "" {
			address = nil
		} else {
			address = &trimmed
		}
	}
	if lat == nil && address == nil {
		return nil, errors.ErrInvalidInput
	}

	record := &model.LocationRecord{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lng,
		Address:   address,
	}
	if err := s.locationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}
	return record, nil
}

// Latest returns the most recent location record for the user.
func (s *locationService) Latest(ctx context.Context, userID uint) (*model.LocationRecord, error) {
	record, err := s.locationRepo.Latest(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("load location: %w", err)
	}
	return record, nil
}
