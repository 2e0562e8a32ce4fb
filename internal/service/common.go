package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trip-roster-api/internal/cache"
	"trip-roster-api/internal/domain"
	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/response"
)

// Caller identifies the authenticated user making a request
type Caller struct {
	UserID   uuid.UUID
	FullName string
	Email    string
}

// findTrip loads a trip and maps a missing row to NOT_FOUND
func findTrip(ctx context.Context, repo repository.TripRepository, tripID uuid.UUID) (*domain.Trip, error) {
	trip, err := repo.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Trip not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch trip", err.Error())
	}
	return trip, nil
}

// snapshotLoader reads a trip's full participant list, preferring the cache
type snapshotLoader struct {
	participantRepo repository.ParticipantRepository
	cache           cache.SnapshotCache
}

func (l snapshotLoader) load(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error) {
	if participants, ok := l.cache.Get(ctx, tripID); ok {
		return participants, nil
	}

	// read the version first so a write that lands during the query fences this Set out
	version := l.cache.Version(ctx, tripID)
	participants, err := l.participantRepo.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch participants", err.Error())
	}
	l.cache.Set(ctx, tripID, version, participants)
	return participants, nil
}

func findParticipant(participants []*domain.Participant, userID uuid.UUID) *domain.Participant {
	for _, p := range participants {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// requireMember rejects callers who are not on the trip
func requireMember(participants []*domain.Participant, userID uuid.UUID) error {
	if findParticipant(participants, userID) == nil {
		return response.NewAppError(response.ErrCodeForbidden, "Not a participant of this trip", "")
	}
	return nil
}

// removeDuplicateUUIDs removes duplicate UUIDs from a slice, keeping first occurrences
func removeDuplicateUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

func toTripResponse(trip *domain.Trip) *dto.TripResponse {
	return &dto.TripResponse{
		ID:            trip.ID,
		Name:          trip.Name,
		Description:   trip.Description,
		OrganizerID:   trip.OrganizerID,
		StartDate:     trip.StartDate,
		EndDate:       trip.EndDate,
		CapacityLimit: trip.CapacityLimit,
		CreatedAt:     trip.CreatedAt,
		UpdatedAt:     trip.UpdatedAt,
	}
}

func toParticipantResponse(p *domain.Participant) *dto.ParticipantResponse {
	view := p.ToCommitment()
	ids := view.ConditionalUserIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &dto.ParticipantResponse{
		ID:                 p.ID,
		TripID:             p.TripID,
		UserID:             p.UserID,
		Role:               string(p.Role),
		FullName:           p.FullName,
		Email:              p.Email,
		DisplayName:        view.DisplayName(),
		ConfirmationStatus: string(p.ConfirmationStatus),
		ConfirmedAt:        p.ConfirmedAt,
		ConfirmationNote:   p.ConfirmationNote,
		ConditionalType:    string(view.EffectiveConditionalType()),
		ConditionalDate:    p.ConditionalDate,
		ConditionalUserIDs: ids,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// timeNow is replaced in tests
var timeNow = func() time.Time { return time.Now().UTC() }

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return response.NewAppError(response.ErrCodeValidation, "endDate must not be before startDate", "")
	}
	return nil
}
