package commitment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDs(ps []*Participant) []uuid.UUID {
	ids := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		ids[i] = p.UserID
	}
	return ids
}

func TestGroupAndOrder_Buckets(t *testing.T) {
	pending := &Participant{UserID: uuid.New(), Status: StatusPending}
	declined := &Participant{UserID: uuid.New(), Status: StatusDeclined}
	cancelled := &Participant{UserID: uuid.New(), Status: StatusCancelled}
	interested := &Participant{UserID: uuid.New(), Status: StatusInterested}

	roster := GroupAndOrder([]*Participant{pending, declined, cancelled, interested})

	assert.Equal(t, []uuid.UUID{pending.UserID}, userIDs(roster[StatusPending]))
	assert.Equal(t, []uuid.UUID{declined.UserID, cancelled.UserID}, userIDs(roster[StatusDeclined]))
	assert.Empty(t, roster[StatusCancelled])
	assert.Equal(t, []uuid.UUID{interested.UserID}, userIDs(roster[StatusInterested]))
	assert.Equal(t, 2, roster.Count(StatusCancelled))
}

func TestGroupAndOrder_ConfirmedByConfirmedAt(t *testing.T) {
	p3 := confirmed(day(3))
	p1 := confirmed(day(1))
	noTime := confirmed(nil)
	p2 := confirmed(day(2))

	roster := GroupAndOrder([]*Participant{p3, noTime, p1, p2})

	assert.Equal(t,
		[]uuid.UUID{p1.UserID, p2.UserID, p3.UserID, noTime.UserID},
		userIDs(roster[StatusConfirmed]))
}

func TestGroupAndOrder_WaitlistFIFO(t *testing.T) {
	mk := func(at *time.Time) *Participant {
		p := &Participant{UserID: uuid.New(), Status: StatusWaitlist}
		if at != nil {
			p.UpdatedAt = *at
		}
		return p
	}
	w3, w1, w2 := mk(day(3)), mk(day(1)), mk(day(2))
	unknown := mk(nil)

	roster := GroupAndOrder([]*Participant{unknown, w3, w1, w2})

	assert.Equal(t,
		[]uuid.UUID{w1.UserID, w2.UserID, w3.UserID, unknown.UserID},
		userIDs(roster[StatusWaitlist]))
}

func TestGroupAndOrder_ConditionalByDeadlineThenName(t *testing.T) {
	zoe := conditional(ConditionalUsers, nil)
	zoe.FullName = "Zoe"
	bob := conditional(ConditionalUsers, nil)
	bob.FullName = "bob"
	emailOnly := conditional(ConditionalUsers, nil)
	emailOnly.Email = "carol@example.com"
	late := conditional(ConditionalDate, day(9))
	early := conditional(ConditionalDate, day(2))

	// transitive: depends on late, so its effective deadline is day 9 too
	chained := conditional(ConditionalBoth, day(1), late.UserID)

	roster := GroupAndOrder([]*Participant{zoe, late, bob, chained, emailOnly, early})

	got := userIDs(roster[StatusConditional])
	require.Len(t, got, 6)
	assert.Equal(t, early.UserID, got[0])
	// late and chained share day 9; snapshot order is kept
	assert.Equal(t, late.UserID, got[1])
	assert.Equal(t, chained.UserID, got[2])
	assert.Equal(t, []uuid.UUID{bob.UserID, emailOnly.UserID, zoe.UserID}, got[3:])
}

func TestGroupAndOrder_DoesNotReorderInput(t *testing.T) {
	p3, p1 := confirmed(day(3)), confirmed(day(1))
	input := []*Participant{p3, p1}

	roster := GroupAndOrder(input)

	assert.Equal(t, p3, input[0])
	assert.Equal(t, p1, input[1])
	assert.Same(t, p1, roster[StatusConfirmed][0])
}

func TestGroupAndOrder_Empty(t *testing.T) {
	roster := GroupAndOrder(nil)
	assert.Empty(t, roster)
	assert.Equal(t, 0, roster.Count(StatusConfirmed))

	c := roster.Capacity(nil)
	assert.False(t, c.IsFull)
	assert.Nil(t, c.SpotsRemaining)
}

func TestRoster_Capacity(t *testing.T) {
	all := []*Participant{
		confirmed(day(1)),
		confirmed(day(2)),
		conditional(ConditionalDate, day(5)),
		{UserID: uuid.New(), Status: StatusWaitlist},
	}
	limit := 2

	c := GroupAndOrder(all).Capacity(&limit)

	assert.True(t, c.IsFull)
	require.NotNil(t, c.SpotsRemaining)
	assert.Equal(t, 0, *c.SpotsRemaining)
	assert.Equal(t, 3, c.PipelineTotal)
	assert.Equal(t, 1, c.WaitlistCount)
}
