package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/metrics"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/response"
)

// TripService defines the interface for trip business logic
type TripService interface {
	CreateTrip(ctx context.Context, caller Caller, req *dto.CreateTripRequest) (*dto.TripResponse, error)
	GetTrip(ctx context.Context, tripID, callerID uuid.UUID) (*dto.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID, callerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error)
}

// tripServiceImpl is the implementation of TripService
type tripServiceImpl struct {
	tripRepo        repository.TripRepository
	participantRepo repository.ParticipantRepository
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewTripService creates a new instance of TripService
func NewTripService(tripRepo repository.TripRepository, participantRepo repository.ParticipantRepository, m *metrics.Metrics, logger *zap.Logger) TripService {
	return &tripServiceImpl{
		tripRepo:        tripRepo,
		participantRepo: participantRepo,
		metrics:         m,
		logger:          logger,
	}
}

// CreateTrip creates a trip with the caller as its confirmed organizer
func (s *tripServiceImpl) CreateTrip(ctx context.Context, caller Caller, req *dto.CreateTripRequest) (*dto.TripResponse, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		Name:          req.Name,
		Description:   req.Description,
		OrganizerID:   caller.UserID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CapacityLimit: req.CapacityLimit,
	}

	now := timeNow()
	organizer := &domain.Participant{
		UserID:             caller.UserID,
		Role:               commitment.RoleOrganizer,
		FullName:           caller.FullName,
		Email:              caller.Email,
		ConfirmationStatus: commitment.StatusConfirmed,
		ConfirmedAt:        &now,
		ConditionalType:    commitment.ConditionalNone,
	}
	organizer.SetDependencyIDs(nil)

	if err := s.tripRepo.CreateWithOrganizer(ctx, trip, organizer); err != nil {
		s.logger.Error("Failed to create trip", zap.String("organizer_id", caller.UserID.String()), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create trip", err.Error())
	}

	s.metrics.IncrementTripCreated()
	s.logger.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("organizer_id", caller.UserID.String()),
	)

	return toTripResponse(trip), nil
}

// GetTrip retrieves a trip by ID for one of its participants
func (s *tripServiceImpl) GetTrip(ctx context.Context, tripID, callerID uuid.UUID) (*dto.TripResponse, error) {
	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	if _, err := s.participantRepo.FindByTripAndUser(ctx, trip.ID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Not a participant of this trip", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify caller", err.Error())
	}
	return toTripResponse(trip), nil
}

// UpdateTrip applies the provided fields. Only the organizer may update.
func (s *tripServiceImpl) UpdateTrip(ctx context.Context, tripID, callerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error) {
	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OrganizerID != callerID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the organizer can update the trip", "")
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartDate != nil {
		trip.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = req.EndDate
	}
	switch {
	case req.ClearCapacity:
		trip.CapacityLimit = nil
	case req.CapacityLimit != nil:
		trip.CapacityLimit = req.CapacityLimit
	}

	if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update trip", err.Error())
	}

	return toTripResponse(trip), nil
}
