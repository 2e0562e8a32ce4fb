package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trip-roster-api/internal/cache"
	"trip-roster-api/internal/client"
	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/metrics"
	"trip-roster-api/internal/repository"
	"trip-roster-api/internal/response"
)

// RosterService reads and changes commitments on a trip
type RosterService interface {
	GetRoster(ctx context.Context, tripID, callerID uuid.UUID) (*dto.RosterResponse, error)
	GetCapacity(ctx context.Context, tripID, callerID uuid.UUID) (*dto.CapacityResponse, error)
	UpdateCommitment(ctx context.Context, tripID uuid.UUID, caller Caller, req *dto.UpdateCommitmentRequest) (*dto.UpdateCommitmentResponse, error)
	CheckDependencies(ctx context.Context, tripID, callerID uuid.UUID, req *dto.DependencyCheckRequest) (*dto.DependencyCheckResponse, error)
}

// rosterServiceImpl is the implementation of RosterService
type rosterServiceImpl struct {
	tripRepo           repository.TripRepository
	participantRepo    repository.ParticipantRepository
	cache              cache.SnapshotCache
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewRosterService creates a new instance of RosterService
func NewRosterService(
	tripRepo repository.TripRepository,
	participantRepo repository.ParticipantRepository,
	snapshotCache cache.SnapshotCache,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) RosterService {
	return &rosterServiceImpl{
		tripRepo:           tripRepo,
		participantRepo:    participantRepo,
		cache:              snapshotCache,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
	}
}

func (s *rosterServiceImpl) snapshot(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error) {
	return snapshotLoader{s.participantRepo, s.cache}.load(ctx, tripID)
}

// GetRoster groups, orders and annotates every participant of the trip.
// Only participants of the trip may read it.
func (s *rosterServiceImpl) GetRoster(ctx context.Context, tripID, callerID uuid.UUID) (*dto.RosterResponse, error) {
	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(rows, callerID); err != nil {
		return nil, err
	}

	started := timeNow()
	all := domain.ToCommitmentSnapshot(rows)
	roster := commitment.GroupAndOrder(all)

	// engine views are rebuilt from rows, so map back by user for the response
	byUser := make(map[uuid.UUID]*domain.Participant, len(rows))
	for _, row := range rows {
		if _, ok := byUser[row.UserID]; !ok {
			byUser[row.UserID] = row
		}
	}

	now := timeNow()
	groups := make([]dto.RosterGroup, 0, len(commitment.GroupOrder))
	for _, status := range commitment.GroupOrder {
		members := roster[status]
		group := dto.RosterGroup{
			Status:       string(status),
			Count:        len(members),
			Participants: make([]dto.RosterEntry, 0, len(members)),
		}
		for _, p := range members {
			group.Participants = append(group.Participants, dto.RosterEntry{
				ParticipantResponse: *toParticipantResponse(byUser[p.UserID]),
				EffectiveDeadline:   commitment.EffectiveDeadline(p, all),
				ConditionsMet:       commitment.ConditionsMetAt(p, all, now),
				IsOrganizer:         p.UserID == trip.OrganizerID,
			})
		}
		groups = append(groups, group)
	}
	s.metrics.ObserveRosterCompute(timeNow().Sub(started))

	return &dto.RosterResponse{
		TripID:   tripID,
		Groups:   groups,
		Capacity: toCapacityResponse(roster, trip.CapacityLimit),
	}, nil
}

// GetCapacity returns the capacity summary of the trip
func (s *rosterServiceImpl) GetCapacity(ctx context.Context, tripID, callerID uuid.UUID) (*dto.CapacityResponse, error) {
	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(rows, callerID); err != nil {
		return nil, err
	}

	capacity := toCapacityResponse(commitment.GroupAndOrder(domain.ToCommitmentSnapshot(rows)), trip.CapacityLimit)
	return &capacity, nil
}

func toCapacityResponse(roster commitment.Roster, limit *int) dto.CapacityResponse {
	c := roster.Capacity(limit)
	return dto.CapacityResponse{
		ConfirmedCount:   roster.Count(commitment.StatusConfirmed),
		CapacityLimit:    limit,
		IsFull:           c.IsFull,
		SpotsRemaining:   c.SpotsRemaining,
		ConditionalCount: roster.Count(commitment.StatusConditional),
		PipelineTotal:    c.PipelineTotal,
		WaitlistCount:    c.WaitlistCount,
	}
}

// UpdateCommitment validates and saves the caller's own commitment. Warnings
// are computed against the snapshot before the save and never block it.
func (s *rosterServiceImpl) UpdateCommitment(ctx context.Context, tripID uuid.UUID, caller Caller, req *dto.UpdateCommitmentRequest) (*dto.UpdateCommitmentResponse, error) {
	status := commitment.Status(req.Status)
	if !status.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid confirmation status", req.Status)
	}

	trip, err := findTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}
	row := findParticipant(rows, caller.UserID)
	if row == nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
	}

	cond, err := validateConditions(status, req, caller.UserID, rows)
	if err != nil {
		return nil, err
	}

	all := domain.ToCommitmentSnapshot(rows)
	warnings := s.collectWarnings(trip, row, status, cond, all)

	wasConfirmed := row.ConfirmationStatus == commitment.StatusConfirmed
	updated := *row
	applyCommitment(&updated, status, req.Note, cond, caller)

	if err := s.participantRepo.Update(ctx, &updated); err != nil {
		s.logger.Error("Failed to save commitment",
			zap.String("trip_id", tripID.String()),
			zap.String("user_id", caller.UserID.String()),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save commitment", err.Error())
	}

	s.cache.Invalidate(ctx, tripID)
	s.metrics.RecordCommitmentUpdate(string(status))
	for _, w := range warnings {
		s.metrics.RecordCommitmentWarning(w.Code)
	}

	if !wasConfirmed && status == commitment.StatusConfirmed {
		s.notifyDependents(ctx, trip, caller.UserID, all)
	}

	return &dto.UpdateCommitmentResponse{
		Participant: toParticipantResponse(&updated),
		Warnings:    warnings,
	}, nil
}

// conditions is the validated conditional part of a request
type conditions struct {
	kind    commitment.ConditionalType
	date    *time.Time
	userIDs []uuid.UUID
}

func validateConditions(status commitment.Status, req *dto.UpdateCommitmentRequest, self uuid.UUID, rows []*domain.Participant) (conditions, error) {
	if status != commitment.StatusConditional {
		return conditions{kind: commitment.ConditionalNone}, nil
	}

	kind := commitment.ConditionalType(req.ConditionalType)
	if !kind.IsValid() || kind == commitment.ConditionalNone {
		return conditions{}, response.NewAppError(response.ErrCodeValidation,
			"conditionalType must be one of date, users, both", req.ConditionalType)
	}

	cond := conditions{kind: kind}
	if kind == commitment.ConditionalDate || kind == commitment.ConditionalBoth {
		if req.ConditionalDate == nil {
			return conditions{}, response.NewAppError(response.ErrCodeValidation, "conditionalDate is required", string(kind))
		}
		date := req.ConditionalDate.UTC()
		cond.date = &date
	}
	if kind == commitment.ConditionalUsers || kind == commitment.ConditionalBoth {
		ids := removeDuplicateUUIDs(req.ConditionalUserIDs)
		if len(ids) == 0 {
			return conditions{}, response.NewAppError(response.ErrCodeValidation, "conditionalUserIds must not be empty", string(kind))
		}
		for _, id := range ids {
			if id == self {
				return conditions{}, response.NewAppError(response.ErrCodeValidation, "A participant cannot depend on themselves", "")
			}
			if findParticipant(rows, id) == nil {
				return conditions{}, response.NewAppError(response.ErrCodeValidation,
					"Dependency is not a participant of this trip", id.String())
			}
		}
		cond.userIDs = ids
	}
	return cond, nil
}

func (s *rosterServiceImpl) collectWarnings(trip *domain.Trip, row *domain.Participant, status commitment.Status, cond conditions, all []*commitment.Participant) []dto.Warning {
	warnings := []dto.Warning{}

	if status == commitment.StatusConfirmed && row.ConfirmationStatus != commitment.StatusConfirmed {
		c := commitment.GroupAndOrder(all).Capacity(trip.CapacityLimit)
		if c.IsFull {
			warnings = append(warnings, dto.Warning{
				Code:    dto.WarningCapacityFull,
				Message: fmt.Sprintf("Trip is already at its capacity of %d", *trip.CapacityLimit),
			})
		}
	}

	self := row.ToCommitment()
	for _, id := range cond.userIDs {
		if commitment.IsMutuallyDependent(id, self, all) {
			warnings = append(warnings, dto.Warning{
				Code:    dto.WarningMutualDependency,
				Message: "This participant is already waiting on you",
				UserID:  &id,
			})
		}
	}

	return warnings
}

// applyCommitment writes the new status onto row. Conditional fields are
// cleared for any status other than conditional.
func applyCommitment(row *domain.Participant, status commitment.Status, note string, cond conditions, caller Caller) {
	switch {
	case status != commitment.StatusConfirmed:
		row.ConfirmedAt = nil
	case row.ConfirmationStatus != commitment.StatusConfirmed || row.ConfirmedAt == nil:
		now := timeNow()
		row.ConfirmedAt = &now
	}

	row.ConfirmationStatus = status
	row.ConfirmationNote = note
	row.ConditionalType = cond.kind
	row.ConditionalDate = cond.date
	row.SetDependencyIDs(cond.userIDs)
	row.ConditionsRemindedAt = nil

	if caller.FullName != "" {
		row.FullName = caller.FullName
	}
	if caller.Email != "" {
		row.Email = caller.Email
	}
}

// notifyDependents tells every conditional participant that lists userID
func (s *rosterServiceImpl) notifyDependents(ctx context.Context, trip *domain.Trip, userID uuid.UUID, all []*commitment.Participant) {
	var events []client.NotificationEvent
	for _, p := range all {
		if p.UserID == userID || p.Status != commitment.StatusConditional || !p.DependsOn(userID) {
			continue
		}
		events = append(events, client.NotificationEvent{
			Type:         client.NotificationDependencyConfirmed,
			ActorID:      userID,
			TargetUserID: p.UserID,
			TripID:       trip.ID,
			ResourceType: "trip",
			ResourceID:   trip.ID,
			ResourceName: trip.Name,
		})
	}
	if len(events) == 0 {
		return
	}
	if err := s.notificationClient.SendBulkNotifications(ctx, events); err != nil {
		s.logger.Warn("Failed to notify dependents", zap.String("trip_id", trip.ID.String()), zap.Error(err))
	}
}

// CheckDependencies reports, per candidate, whether choosing it would close a
// one-hop mutual dependency with the caller
func (s *rosterServiceImpl) CheckDependencies(ctx context.Context, tripID, callerID uuid.UUID, req *dto.DependencyCheckRequest) (*dto.DependencyCheckResponse, error) {
	if _, err := findTrip(ctx, s.tripRepo, tripID); err != nil {
		return nil, err
	}
	rows, err := s.snapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}
	row := findParticipant(rows, callerID)
	if row == nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
	}

	all := domain.ToCommitmentSnapshot(rows)
	self := row.ToCommitment()

	results := make([]dto.DependencyCheckResult, 0, len(req.UserIDs))
	for _, id := range req.UserIDs {
		result := dto.DependencyCheckResult{
			UserID: id,
			Mutual: commitment.IsMutuallyDependent(id, self, all),
		}
		if candidate := findParticipant(rows, id); candidate != nil {
			result.DisplayName = candidate.ToCommitment().DisplayName()
		}
		results = append(results, result)
	}
	return &dto.DependencyCheckResponse{Results: results}, nil
}
