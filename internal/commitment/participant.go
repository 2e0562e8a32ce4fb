// Package commitment resolves the collective commitment state of a trip roster.
//
// Every function in this package is pure: it reads a complete snapshot of one
// trip's participants and never mutates it. Callers that receive partial
// updates must merge them into a full snapshot first, otherwise dependency
// resolution silently treats the missing rows as "no contribution".
package commitment

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a participant's declared commitment state
type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInterested  Status = "interested"
	StatusConditional Status = "conditional"
	StatusWaitlist    Status = "waitlist"
	StatusDeclined    Status = "declined"
	StatusCancelled   Status = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInterested, StatusConditional,
		StatusWaitlist, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// DisplayGroup folds cancelled into declined.
func (s Status) DisplayGroup() Status {
	if s == StatusCancelled {
		return StatusDeclined
	}
	return s
}

// ConditionalType selects which axes of a conditional commitment apply
type ConditionalType string

const (
	ConditionalNone  ConditionalType = "none"
	ConditionalDate  ConditionalType = "date"
	ConditionalUsers ConditionalType = "users"
	ConditionalBoth  ConditionalType = "both"
)

// IsValid reports whether t is one of the known conditional types
func (t ConditionalType) IsValid() bool {
	switch t {
	case ConditionalNone, ConditionalDate, ConditionalUsers, ConditionalBoth:
		return true
	}
	return false
}

// Role of a participant within the trip
type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

// Participant is the minimal view of a roster row the engine works on
type Participant struct {
	UserID             uuid.UUID
	TripID             uuid.UUID
	Role               Role
	Status             Status
	ConfirmedAt        *time.Time
	Note               string
	ConditionalType    ConditionalType
	ConditionalDate    *time.Time
	ConditionalUserIDs []uuid.UUID
	UpdatedAt          time.Time
	FullName           string
	Email              string
}

// EffectiveConditionalType returns the stored conditional type only while the
// participant is conditional; any other status reads as none.
func (p *Participant) EffectiveConditionalType() ConditionalType {
	if p == nil || p.Status != StatusConditional || p.ConditionalType == "" {
		return ConditionalNone
	}
	return p.ConditionalType
}

// DisplayName is the full name, falling back to the contact identifier.
func (p *Participant) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return p.Email
}

// DependsOn reports whether userID is in the participant's dependency list
func (p *Participant) DependsOn(userID uuid.UUID) bool {
	for _, id := range p.ConditionalUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// snapshot indexes participants by user id. The first row wins when a user
// appears more than once.
type snapshot map[uuid.UUID]*Participant

func indexSnapshot(all []*Participant) snapshot {
	idx := make(snapshot, len(all))
	for _, p := range all {
		if p == nil {
			continue
		}
		if _, exists := idx[p.UserID]; !exists {
			idx[p.UserID] = p
		}
	}
	return idx
}
