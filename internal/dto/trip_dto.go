package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTripRequest represents the request to create a new trip
// @Description The caller becomes the organizer and is recorded as confirmed.
// @Description capacityLimit is optional; omit it for an unlimited trip.
type CreateTripRequest struct {
	Name          string     `json:"name" binding:"required,min=2,max=100" example:"Jeju spring trip"`
	Description   string     `json:"description" binding:"max=500" example:"Three days on Jeju island"`
	StartDate     *time.Time `json:"startDate,omitempty" example:"2026-04-10T00:00:00Z"`
	EndDate       *time.Time `json:"endDate,omitempty" example:"2026-04-13T00:00:00Z"`
	CapacityLimit *int       `json:"capacityLimit,omitempty" binding:"omitempty,min=0" example:"8"`
}

// UpdateTripRequest represents the request to update a trip. All fields are optional.
// @Description clearCapacity=true removes the capacity limit.
type UpdateTripRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=2,max=100" example:"Jeju spring trip (updated)"`
	Description   *string    `json:"description" binding:"omitempty,max=500"`
	StartDate     *time.Time `json:"startDate,omitempty" example:"2026-04-11T00:00:00Z"`
	EndDate       *time.Time `json:"endDate,omitempty" example:"2026-04-14T00:00:00Z"`
	CapacityLimit *int       `json:"capacityLimit,omitempty" binding:"omitempty,min=0" example:"10"`
	ClearCapacity bool       `json:"clearCapacity" example:"false"`
}

// TripResponse represents the trip response
type TripResponse struct {
	ID            uuid.UUID  `json:"tripId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name          string     `json:"name" example:"Jeju spring trip"`
	Description   string     `json:"description"`
	OrganizerID   uuid.UUID  `json:"organizerId" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	CapacityLimit *int       `json:"capacityLimit"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
