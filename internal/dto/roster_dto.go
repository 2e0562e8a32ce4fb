package dto

import (
	"time"

	"github.com/google/uuid"
)

// RosterEntry is a participant row annotated for display
type RosterEntry struct {
	ParticipantResponse
	EffectiveDeadline *time.Time `json:"effectiveDeadline"`
	ConditionsMet     bool       `json:"conditionsMet"`
	IsOrganizer       bool       `json:"isOrganizer"`
}

// RosterGroup is one display bucket
type RosterGroup struct {
	Status       string        `json:"status" example:"confirmed"`
	Count        int           `json:"count"`
	Participants []RosterEntry `json:"participants"`
}

// CapacityResponse summarizes trip capacity
// @Description spotsRemaining is null when the trip has no capacity limit
type CapacityResponse struct {
	ConfirmedCount   int  `json:"confirmedCount" example:"6"`
	CapacityLimit    *int `json:"capacityLimit" example:"8"`
	IsFull           bool `json:"isFull" example:"false"`
	SpotsRemaining   *int `json:"spotsRemaining" example:"2"`
	ConditionalCount int  `json:"conditionalCount" example:"3"`
	PipelineTotal    int  `json:"pipelineTotal" example:"9"`
	WaitlistCount    int  `json:"waitlistCount" example:"1"`
}

// RosterResponse groups are always in display order and always all present
type RosterResponse struct {
	TripID   uuid.UUID        `json:"tripId"`
	Groups   []RosterGroup    `json:"groups"`
	Capacity CapacityResponse `json:"capacity"`
}
