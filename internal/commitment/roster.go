package commitment

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GroupOrder is the order in which roster groups are presented
var GroupOrder = []Status{
	StatusConfirmed,
	StatusConditional,
	StatusWaitlist,
	StatusInterested,
	StatusPending,
	StatusDeclined,
}

// Roster maps a display group to its ordered participants
type Roster map[Status][]*Participant

// Count returns the number of participants in a group
func (r Roster) Count(status Status) int {
	return len(r[status.DisplayGroup()])
}

// Capacity summarizes the roster against the trip's capacity limit
func (r Roster) Capacity(capacityLimit *int) Capacity {
	return CapacitySummary(
		r.Count(StatusConfirmed),
		capacityLimit,
		r.Count(StatusConditional),
		r.Count(StatusWaitlist),
	)
}

// GroupAndOrder partitions the snapshot by status and orders each group for
// display. The input slice is left untouched; the groups hold the same
// participant pointers.
func GroupAndOrder(all []*Participant) Roster {
	roster := make(Roster)
	for _, p := range all {
		if p == nil {
			continue
		}
		group := p.Status.DisplayGroup()
		roster[group] = append(roster[group], p)
	}

	if confirmed := roster[StatusConfirmed]; len(confirmed) > 1 {
		slices.SortStableFunc(confirmed, func(a, b *Participant) int {
			return compareTimePtr(a.ConfirmedAt, b.ConfirmedAt)
		})
	}

	if waitlist := roster[StatusWaitlist]; len(waitlist) > 1 {
		slices.SortStableFunc(waitlist, func(a, b *Participant) int {
			return compareTimePtr(nonZero(a.UpdatedAt), nonZero(b.UpdatedAt))
		})
	}

	if conditional := roster[StatusConditional]; len(conditional) > 1 {
		sortConditional(conditional, all)
	}

	return roster
}

// sortConditional orders by soonest effective deadline; participants without
// a deadline go last and are ordered by display name among themselves.
func sortConditional(group, all []*Participant) {
	idx := indexSnapshot(all)
	deadlines := make(map[uuid.UUID]*time.Time, len(group))
	for _, p := range group {
		deadlines[p.UserID] = idx.effectiveDeadline(p, map[uuid.UUID]struct{}{})
	}

	slices.SortStableFunc(group, func(a, b *Participant) int {
		da, db := deadlines[a.UserID], deadlines[b.UserID]
		if da == nil && db == nil {
			return strings.Compare(
				strings.ToLower(a.DisplayName()),
				strings.ToLower(b.DisplayName()),
			)
		}
		return compareTimePtr(da, db)
	})
}

// compareTimePtr orders ascending with nil after every non-nil value
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
