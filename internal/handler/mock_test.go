package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trip-roster-api/internal/dto"
	"trip-roster-api/internal/middleware"
	"trip-roster-api/internal/service"
)

// setupTestRouter returns a gin engine in test mode. When userID is not
// uuid.Nil, every request carries it the way middleware.Auth would.
func setupTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != uuid.Nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUserID, userID)
			c.Set(middleware.ContextKeyUserName, "Test User")
			c.Set(middleware.ContextKeyUserEmail, "test@example.com")
			c.Next()
		})
	}
	return router
}

// MockTripService is a mock implementation of TripService
type MockTripService struct {
	CreateTripFunc func(ctx context.Context, caller service.Caller, req *dto.CreateTripRequest) (*dto.TripResponse, error)
	GetTripFunc    func(ctx context.Context, tripID, callerID uuid.UUID) (*dto.TripResponse, error)
	UpdateTripFunc func(ctx context.Context, tripID, callerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error)
}

func (m *MockTripService) CreateTrip(ctx context.Context, caller service.Caller, req *dto.CreateTripRequest) (*dto.TripResponse, error) {
	if m.CreateTripFunc != nil {
		return m.CreateTripFunc(ctx, caller, req)
	}
	return &dto.TripResponse{}, nil
}

func (m *MockTripService) GetTrip(ctx context.Context, tripID, callerID uuid.UUID) (*dto.TripResponse, error) {
	if m.GetTripFunc != nil {
		return m.GetTripFunc(ctx, tripID, callerID)
	}
	return &dto.TripResponse{ID: tripID}, nil
}

func (m *MockTripService) UpdateTrip(ctx context.Context, tripID, callerID uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error) {
	if m.UpdateTripFunc != nil {
		return m.UpdateTripFunc(ctx, tripID, callerID, req)
	}
	return &dto.TripResponse{ID: tripID}, nil
}

// MockParticipantService is a mock implementation of ParticipantService
type MockParticipantService struct {
	AddParticipantsFunc   func(ctx context.Context, callerID uuid.UUID, req *dto.AddParticipantsRequest) (*dto.AddParticipantsResponse, error)
	GetParticipantsFunc   func(ctx context.Context, tripID, callerID uuid.UUID) ([]*dto.ParticipantResponse, error)
	RemoveParticipantFunc func(ctx context.Context, tripID, callerID, userID uuid.UUID) error
}

func (m *MockParticipantService) AddParticipants(ctx context.Context, callerID uuid.UUID, req *dto.AddParticipantsRequest) (*dto.AddParticipantsResponse, error) {
	if m.AddParticipantsFunc != nil {
		return m.AddParticipantsFunc(ctx, callerID, req)
	}
	return &dto.AddParticipantsResponse{}, nil
}

func (m *MockParticipantService) GetParticipants(ctx context.Context, tripID, callerID uuid.UUID) ([]*dto.ParticipantResponse, error) {
	if m.GetParticipantsFunc != nil {
		return m.GetParticipantsFunc(ctx, tripID, callerID)
	}
	return nil, nil
}

func (m *MockParticipantService) RemoveParticipant(ctx context.Context, tripID, callerID, userID uuid.UUID) error {
	if m.RemoveParticipantFunc != nil {
		return m.RemoveParticipantFunc(ctx, tripID, callerID, userID)
	}
	return nil
}

// MockRosterService is a mock implementation of RosterService
type MockRosterService struct {
	GetRosterFunc         func(ctx context.Context, tripID, callerID uuid.UUID) (*dto.RosterResponse, error)
	GetCapacityFunc       func(ctx context.Context, tripID, callerID uuid.UUID) (*dto.CapacityResponse, error)
	UpdateCommitmentFunc  func(ctx context.Context, tripID uuid.UUID, caller service.Caller, req *dto.UpdateCommitmentRequest) (*dto.UpdateCommitmentResponse, error)
	CheckDependenciesFunc func(ctx context.Context, tripID, callerID uuid.UUID, req *dto.DependencyCheckRequest) (*dto.DependencyCheckResponse, error)
}

func (m *MockRosterService) GetRoster(ctx context.Context, tripID, callerID uuid.UUID) (*dto.RosterResponse, error) {
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(ctx, tripID, callerID)
	}
	return &dto.RosterResponse{TripID: tripID}, nil
}

func (m *MockRosterService) GetCapacity(ctx context.Context, tripID, callerID uuid.UUID) (*dto.CapacityResponse, error) {
	if m.GetCapacityFunc != nil {
		return m.GetCapacityFunc(ctx, tripID, callerID)
	}
	return &dto.CapacityResponse{}, nil
}

func (m *MockRosterService) UpdateCommitment(ctx context.Context, tripID uuid.UUID, caller service.Caller, req *dto.UpdateCommitmentRequest) (*dto.UpdateCommitmentResponse, error) {
	if m.UpdateCommitmentFunc != nil {
		return m.UpdateCommitmentFunc(ctx, tripID, caller, req)
	}
	return &dto.UpdateCommitmentResponse{}, nil
}

func (m *MockRosterService) CheckDependencies(ctx context.Context, tripID, callerID uuid.UUID, req *dto.DependencyCheckRequest) (*dto.DependencyCheckResponse, error) {
	if m.CheckDependenciesFunc != nil {
		return m.CheckDependenciesFunc(ctx, tripID, callerID, req)
	}
	return &dto.DependencyCheckResponse{}, nil
}
