package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
)

// ParticipantRepository defines the interface for trip participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error)
	FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*domain.Participant, error)
	FindTripIDsByStatus(ctx context.Context, status commitment.Status) ([]uuid.UUID, error)
	Update(ctx context.Context, participant *domain.Participant) error
	MarkConditionsReminded(ctx context.Context, tripID uuid.UUID, userIDs []uuid.UUID, at time.Time) error
	Delete(ctx context.Context, tripID, userID uuid.UUID) error
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// Create creates a new participant row
func (r *participantRepositoryImpl) Create(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).Omit("Trip").Create(participant).Error
}

// FindByTripID returns the full snapshot of a trip in join order
func (r *participantRepositoryImpl) FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByTripAndUser finds one participant row
func (r *participantRepositoryImpl) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindTripIDsByStatus lists the trips that have at least one participant in status
func (r *participantRepositoryImpl) FindTripIDsByStatus(ctx context.Context, status commitment.Status) ([]uuid.UUID, error) {
	var tripIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("confirmation_status = ?", status).
		Distinct().
		Pluck("trip_id", &tripIDs).Error; err != nil {
		return nil, err
	}
	return tripIDs, nil
}

// Update saves every column of the participant, including cleared ones
func (r *participantRepositoryImpl) Update(ctx context.Context, participant *domain.Participant) error {
	return r.db.WithContext(ctx).Omit("Trip").Save(participant).Error
}

// MarkConditionsReminded stamps the reminder time on the users' rows that are
// still conditional. updated_at is left alone.
func (r *participantRepositoryImpl) MarkConditionsReminded(ctx context.Context, tripID uuid.UUID, userIDs []uuid.UUID, at time.Time) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("trip_id = ? AND user_id IN ? AND confirmation_status = ?", tripID, userIDs, commitment.StatusConditional).
		UpdateColumn("conditions_reminded_at", at).Error
}

// Delete removes a participant from a trip
func (r *participantRepositoryImpl) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&domain.Participant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
