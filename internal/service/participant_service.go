package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trip-roster-api/internal/cache"
	"trip-roster-api/internal/client"
	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/response"
)

// ParticipantService defines the interface for trip membership
type ParticipantService interface {
	AddParticipants(ctx context.Context, callerID uuid.UUID, req *dto.AddParticipantsRequest) (*dto.AddParticipantsResponse, error)
	GetParticipants(ctx context.Context, tripID, callerID uuid.UUID) ([]*dto.ParticipantResponse, error)
	RemoveParticipant(ctx context.Context, tripID, callerID, userID uuid.UUID) error
}

// participantServiceImpl is the implementation of ParticipantService
type participantServiceImpl struct {
	participantRepo    repository.ParticipantRepository
	tripRepo           repository.TripRepository
	cache              cache.SnapshotCache
	notificationClient client.NotificationClient
	logger             *zap.Logger
}

// NewParticipantService creates a new instance of ParticipantService
func NewParticipantService(
	participantRepo repository.ParticipantRepository,
	tripRepo repository.TripRepository,
	snapshotCache cache.SnapshotCache,
	notificationClient client.NotificationClient,
	logger *zap.Logger,
) ParticipantService {
	return &participantServiceImpl{
		participantRepo:    participantRepo,
		tripRepo:           tripRepo,
		cache:              snapshotCache,
		notificationClient: notificationClient,
		logger:             logger,
	}
}

// AddParticipants adds one or more users to a trip as pending participants.
// The caller must already be on the trip.
func (s *participantServiceImpl) AddParticipants(ctx context.Context, callerID uuid.UUID, req *dto.AddParticipantsRequest) (*dto.AddParticipantsResponse, error) {
	trip, err := findTrip(ctx, s.tripRepo, req.TripID)
	if err != nil {
		return nil, err
	}

	if _, err := s.participantRepo.FindByTripAndUser(ctx, trip.ID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeForbidden, "Only trip participants can add participants", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify caller", err.Error())
	}

	uniqueUserIDs := removeDuplicateUUIDs(req.UserIDs)

	resp := &dto.AddParticipantsResponse{
		TotalRequested: len(uniqueUserIDs),
		Results:        make([]dto.ParticipantResult, 0, len(uniqueUserIDs)),
	}

	var added []client.NotificationEvent
	for _, userID := range uniqueUserIDs {
		result := s.addSingleParticipant(ctx, trip.ID, userID)
		resp.Results = append(resp.Results, result)
		if !result.Success {
			resp.TotalFailed++
			continue
		}
		resp.TotalSuccess++
		added = append(added, client.NotificationEvent{
			Type:         client.NotificationParticipantAdded,
			ActorID:      callerID,
			TargetUserID: userID,
			TripID:       trip.ID,
			ResourceType: "trip",
			ResourceID:   trip.ID,
			ResourceName: trip.Name,
		})
	}

	if resp.TotalSuccess > 0 {
		s.cache.Invalidate(ctx, trip.ID)
		if err := s.notificationClient.SendBulkNotifications(ctx, added); err != nil {
			s.logger.Warn("Failed to queue participant notifications", zap.Error(err))
		}
	}

	return resp, nil
}

// addSingleParticipant attempts to add a single participant and returns the result
func (s *participantServiceImpl) addSingleParticipant(ctx context.Context, tripID, userID uuid.UUID) dto.ParticipantResult {
	result := dto.ParticipantResult{UserID: userID}

	existing, err := s.participantRepo.FindByTripAndUser(ctx, tripID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		result.Error = "Failed to check existing participant"
		return result
	}
	if existing != nil {
		result.Error = "Participant already exists"
		return result
	}

	participant := &domain.Participant{
		TripID:             tripID,
		UserID:             userID,
		Role:               commitment.RoleParticipant,
		ConfirmationStatus: commitment.StatusPending,
		ConditionalType:    commitment.ConditionalNone,
	}
	participant.SetDependencyIDs(nil)

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "unique") {
			result.Error = "Participant already exists"
		} else {
			result.Error = "Failed to add participant"
		}
		return result
	}

	result.Success = true
	return result
}

// GetParticipants returns the raw snapshot of a trip in join order
func (s *participantServiceImpl) GetParticipants(ctx context.Context, tripID, callerID uuid.UUID) ([]*dto.ParticipantResponse, error) {
	if _, err := findTrip(ctx, s.tripRepo, tripID); err != nil {
		return nil, err
	}

	participants, err := snapshotLoader{s.participantRepo, s.cache}.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(participants, callerID); err != nil {
		return nil, err
	}

	responses := make([]*dto.ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = toParticipantResponse(p)
	}
	return responses, nil
}

// RemoveParticipant removes a participant from a trip. Only the organizer may
// remove, and the organizer cannot remove themselves.
func (s *participantServiceImpl) RemoveParticipant(ctx context.Context, tripID, callerID, userID uuid.UUID) error {
	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return err
	}
	if trip.OrganizerID != callerID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the organizer can remove participants", "")
	}
	if userID == trip.OrganizerID {
		return response.NewAppError(response.ErrCodeValidation, "The organizer cannot be removed", "")
	}

	if err := s.participantRepo.Delete(ctx, tripID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove participant", err.Error())
	}

	s.cache.Invalidate(ctx, tripID)
	return nil
}
