package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trip-roster-api/internal/domain"
)

// TripRepository defines the interface for trip data access
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	CreateWithOrganizer(ctx context.Context, trip *domain.Trip, organizer *domain.Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
}

// tripRepositoryImpl is the GORM implementation of TripRepository
type tripRepositoryImpl struct {
	db *gorm.DB
}

// NewTripRepository creates a new instance of TripRepository
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepositoryImpl{db: db}
}

// Create creates a new trip
func (r *tripRepositoryImpl) Create(ctx context.Context, trip *domain.Trip) error {
	return r.db.WithContext(ctx).Omit("Participants").Create(trip).Error
}

// CreateWithOrganizer inserts the trip and its organizer row in one transaction
func (r *tripRepositoryImpl) CreateWithOrganizer(ctx context.Context, trip *domain.Trip, organizer *domain.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants").Create(trip).Error; err != nil {
			return err
		}
		organizer.TripID = trip.ID
		return tx.Omit("Trip").Create(organizer).Error
	})
}

// FindByID finds a trip by its ID
func (r *tripRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var trip domain.Trip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// Update saves every column of the trip, including cleared optional ones
func (r *tripRepositoryImpl) Update(ctx context.Context, trip *domain.Trip) error {
	return r.db.WithContext(ctx).Omit("Participants").Save(trip).Error
}
