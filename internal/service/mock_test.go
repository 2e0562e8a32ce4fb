package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"trip-roster-api/internal/client"
	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/domain"
)

// MockTripRepository is a mock implementation of TripRepository
type MockTripRepository struct {
	CreateFunc              func(ctx context.Context, trip *domain.Trip) error
	CreateWithOrganizerFunc func(ctx context.Context, trip *domain.Trip, organizer *domain.Participant) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	UpdateFunc              func(ctx context.Context, trip *domain.Trip) error
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, trip)
	}
	return nil
}

func (m *MockTripRepository) CreateWithOrganizer(ctx context.Context, trip *domain.Trip, organizer *domain.Participant) error {
	if m.CreateWithOrganizerFunc != nil {
		return m.CreateWithOrganizerFunc(ctx, trip, organizer)
	}
	return nil
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, trip)
	}
	return nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	CreateFunc              func(ctx context.Context, participant *domain.Participant) error
	FindByTripIDFunc        func(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error)
	FindByTripAndUserFunc   func(ctx context.Context, tripID, userID uuid.UUID) (*domain.Participant, error)
	FindTripIDsByStatusFunc func(ctx context.Context, status commitment.Status) ([]uuid.UUID, error)
	UpdateFunc              func(ctx context.Context, participant *domain.Participant) error
	MarkRemindedFunc        func(ctx context.Context, tripID uuid.UUID, userIDs []uuid.UUID, at time.Time) error
	DeleteFunc              func(ctx context.Context, tripID, userID uuid.UUID) error
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	return nil
}

func (m *MockParticipantRepository) FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, error) {
	if m.FindByTripIDFunc != nil {
		return m.FindByTripIDFunc(ctx, tripID)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*domain.Participant, error) {
	if m.FindByTripAndUserFunc != nil {
		return m.FindByTripAndUserFunc(ctx, tripID, userID)
	}
	return nil, nil
}

func (m *MockParticipantRepository) FindTripIDsByStatus(ctx context.Context, status commitment.Status) ([]uuid.UUID, error) {
	if m.FindTripIDsByStatusFunc != nil {
		return m.FindTripIDsByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockParticipantRepository) Update(ctx context.Context, participant *domain.Participant) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, participant)
	}
	return nil
}

func (m *MockParticipantRepository) MarkConditionsReminded(ctx context.Context, tripID uuid.UUID, userIDs []uuid.UUID, at time.Time) error {
	if m.MarkRemindedFunc != nil {
		return m.MarkRemindedFunc(ctx, tripID, userIDs, at)
	}
	return nil
}

func (m *MockParticipantRepository) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tripID, userID)
	}
	return nil
}

// fakeSnapshotCache records calls and serves what was Set, honouring versions
type fakeSnapshotCache struct {
	entries     map[uuid.UUID][]*domain.Participant
	versions    map[uuid.UUID]int64
	invalidated []uuid.UUID
	staleSets   int
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{
		entries:  make(map[uuid.UUID][]*domain.Participant),
		versions: make(map[uuid.UUID]int64),
	}
}

func (c *fakeSnapshotCache) Get(ctx context.Context, tripID uuid.UUID) ([]*domain.Participant, bool) {
	p, ok := c.entries[tripID]
	return p, ok
}

func (c *fakeSnapshotCache) Version(ctx context.Context, tripID uuid.UUID) int64 {
	return c.versions[tripID]
}

func (c *fakeSnapshotCache) Set(ctx context.Context, tripID uuid.UUID, version int64, participants []*domain.Participant) {
	if version != c.versions[tripID] {
		c.staleSets++
		return
	}
	c.entries[tripID] = participants
}

func (c *fakeSnapshotCache) Invalidate(ctx context.Context, tripID uuid.UUID) {
	c.versions[tripID]++
	delete(c.entries, tripID)
	c.invalidated = append(c.invalidated, tripID)
}

// MockNotificationClient is a testify mock of NotificationClient
type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotificationClient) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
