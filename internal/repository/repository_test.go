package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trip-roster-api/internal/commitment"
	"trip-roster-api/internal/database"
	"trip-roster-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := database.AutoMigrate(db, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestTripRepository_CreateWithOrganizer(t *testing.T) {
	db := setupTestDB(t)
	trips := NewTripRepository(db)
	participants := NewParticipantRepository(db)
	ctx := context.Background()

	limit := 8
	organizerID := uuid.New()
	trip := &domain.Trip{Name: "Jeju", OrganizerID: organizerID, CapacityLimit: &limit}
	organizer := &domain.Participant{
		UserID:             organizerID,
		Role:               commitment.RoleOrganizer,
		ConfirmationStatus: commitment.StatusConfirmed,
	}

	require.NoError(t, trips.CreateWithOrganizer(ctx, trip, organizer))
	assert.NotEqual(t, uuid.Nil, trip.ID)
	assert.Equal(t, trip.ID, organizer.TripID)

	found, err := trips.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jeju", found.Name)
	require.NotNil(t, found.CapacityLimit)
	assert.Equal(t, 8, *found.CapacityLimit)

	row, err := participants.FindByTripAndUser(ctx, trip.ID, organizerID)
	require.NoError(t, err)
	assert.Equal(t, commitment.RoleOrganizer, row.Role)
	assert.Equal(t, commitment.StatusConfirmed, row.ConfirmationStatus)
}

func TestTripRepository_UpdateClearsCapacity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	limit := 4
	trip := &domain.Trip{Name: "Busan", OrganizerID: uuid.New(), CapacityLimit: &limit}
	require.NoError(t, repo.Create(ctx, trip))

	trip.CapacityLimit = nil
	trip.Name = "Busan weekend"
	require.NoError(t, repo.Update(ctx, trip))

	found, err := repo.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Busan weekend", found.Name)
	assert.Nil(t, found.CapacityLimit)
}

func TestTripRepository_FindByID_NotFound(t *testing.T) {
	repo := NewTripRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestParticipantRepository_FindByTripID_JoinOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	tripID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var want []uuid.UUID
	for i := range 3 {
		p := &domain.Participant{TripID: tripID, UserID: uuid.New()}
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
		want = append(want, p.UserID)
	}
	// another trip's row is not part of the snapshot
	require.NoError(t, repo.Create(ctx, &domain.Participant{TripID: uuid.New(), UserID: uuid.New()}))

	got, err := repo.FindByTripID(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, want[i], p.UserID)
		assert.Equal(t, commitment.StatusPending, p.ConfirmationStatus, "default status")
		assert.Equal(t, commitment.ConditionalNone, p.ConditionalType, "default conditional type")
	}
}

func TestParticipantRepository_UpdateRoundTripsConditions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	p := &domain.Participant{TripID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, repo.Create(ctx, p))

	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	deps := []uuid.UUID{uuid.New(), uuid.New()}
	p.ConfirmationStatus = commitment.StatusConditional
	p.ConditionalType = commitment.ConditionalBoth
	p.ConditionalDate = &deadline
	p.SetDependencyIDs(deps)
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByTripAndUser(ctx, p.TripID, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, commitment.StatusConditional, found.ConfirmationStatus)
	require.NotNil(t, found.ConditionalDate)
	assert.True(t, deadline.Equal(*found.ConditionalDate))
	assert.Equal(t, deps, found.DependencyIDs())

	// clearing back to a plain status drops the condition fields
	found.ConfirmationStatus = commitment.StatusInterested
	found.ConditionalType = commitment.ConditionalNone
	found.ConditionalDate = nil
	found.SetDependencyIDs(nil)
	require.NoError(t, repo.Update(ctx, found))

	cleared, err := repo.FindByTripAndUser(ctx, p.TripID, p.UserID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ConditionalDate)
	assert.Empty(t, cleared.DependencyIDs())
}

func TestParticipantRepository_DuplicateRejected(t *testing.T) {
	repo := NewParticipantRepository(setupTestDB(t))
	ctx := context.Background()

	tripID, userID := uuid.New(), uuid.New()
	require.NoError(t, repo.Create(ctx, &domain.Participant{TripID: tripID, UserID: userID}))
	assert.Error(t, repo.Create(ctx, &domain.Participant{TripID: tripID, UserID: userID}))
}

func TestParticipantRepository_Delete(t *testing.T) {
	repo := NewParticipantRepository(setupTestDB(t))
	ctx := context.Background()

	p := &domain.Participant{TripID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.TripID, p.UserID))
	_, err := repo.FindByTripAndUser(ctx, p.TripID, p.UserID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.TripID, p.UserID), gorm.ErrRecordNotFound)
}

func TestParticipantRepository_FindTripIDsByStatus(t *testing.T) {
	repo := NewParticipantRepository(setupTestDB(t))
	ctx := context.Background()

	withConditional, withoutConditional := uuid.New(), uuid.New()
	for range 2 {
		require.NoError(t, repo.Create(ctx, &domain.Participant{
			TripID:             withConditional,
			UserID:             uuid.New(),
			ConfirmationStatus: commitment.StatusConditional,
			ConditionalType:    commitment.ConditionalDate,
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Participant{
		TripID:             withoutConditional,
		UserID:             uuid.New(),
		ConfirmationStatus: commitment.StatusConfirmed,
	}))

	ids, err := repo.FindTripIDsByStatus(ctx, commitment.StatusConditional)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{withConditional}, ids)
}

func TestParticipantRepository_MarkConditionsReminded(t *testing.T) {
	repo := NewParticipantRepository(setupTestDB(t))
	ctx := context.Background()

	tripID := uuid.New()
	waiting := &domain.Participant{TripID: tripID, UserID: uuid.New(), ConfirmationStatus: commitment.StatusConditional, ConditionalType: commitment.ConditionalDate}
	movedOn := &domain.Participant{TripID: tripID, UserID: uuid.New(), ConfirmationStatus: commitment.StatusConfirmed}
	untouched := &domain.Participant{TripID: tripID, UserID: uuid.New(), ConfirmationStatus: commitment.StatusConditional, ConditionalType: commitment.ConditionalDate}
	for _, p := range []*domain.Participant{waiting, movedOn, untouched} {
		require.NoError(t, repo.Create(ctx, p))
	}

	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkConditionsReminded(ctx, tripID, []uuid.UUID{waiting.UserID, movedOn.UserID}, at))
	require.NoError(t, repo.MarkConditionsReminded(ctx, tripID, nil, at))

	found, err := repo.FindByTripAndUser(ctx, tripID, waiting.UserID)
	require.NoError(t, err)
	require.NotNil(t, found.ConditionsRemindedAt)
	assert.True(t, at.Equal(*found.ConditionsRemindedAt))
	assert.True(t, waiting.UpdatedAt.Equal(found.UpdatedAt), "updated_at is not bumped")

	for _, p := range []*domain.Participant{movedOn, untouched} {
		other, err := repo.FindByTripAndUser(ctx, tripID, p.UserID)
		require.NoError(t, err)
		assert.Nil(t, other.ConditionsRemindedAt)
	}
}
