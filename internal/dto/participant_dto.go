package dto

import (
	"time"

	"github.com/google/uuid"
)

// AddParticipantsRequest represents the request to add one or more participants to a trip
// @Description Provide 1 to 50 userIds. Duplicate userIds are removed.
type AddParticipantsRequest struct {
	TripID  uuid.UUID   `json:"-"`
	UserIDs []uuid.UUID `json:"userIds" binding:"required,min=1,max=50" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890,b2c3d4e5-f6a7-8901-bcde-f12345678901"`
}

// ParticipantResult represents the result of adding a single participant
// @Description success=false means addition failed, error field contains reason
type ParticipantResult struct {
	UserID  uuid.UUID `json:"userId" example:"a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Success bool      `json:"success" example:"true"`
	Error   string    `json:"error,omitempty" example:"Participant already exists"`
}

// AddParticipantsResponse represents the response for adding participants
// @Description HTTP 201: All participants added successfully (totalFailed=0)
// @Description HTTP 207: Partial success (totalSuccess>0 and totalFailed>0)
// @Description HTTP 400: All participants failed (totalSuccess=0)
type AddParticipantsResponse struct {
	TotalRequested int                 `json:"totalRequested" example:"3"`
	TotalSuccess   int                 `json:"totalSuccess" example:"2"`
	TotalFailed    int                 `json:"totalFailed" example:"1"`
	Results        []ParticipantResult `json:"results"`
}

// ParticipantResponse is one stored commitment row
type ParticipantResponse struct {
	ID                 uuid.UUID   `json:"id"`
	TripID             uuid.UUID   `json:"tripId"`
	UserID             uuid.UUID   `json:"userId"`
	Role               string      `json:"role" example:"participant"`
	FullName           string      `json:"fullName,omitempty"`
	Email              string      `json:"email,omitempty"`
	DisplayName        string      `json:"displayName"`
	ConfirmationStatus string      `json:"confirmationStatus" example:"conditional"`
	ConfirmedAt        *time.Time  `json:"confirmedAt"`
	ConfirmationNote   string      `json:"confirmationNote,omitempty"`
	ConditionalType    string      `json:"conditionalType" example:"both"`
	ConditionalDate    *time.Time  `json:"conditionalDate"`
	ConditionalUserIDs []uuid.UUID `json:"conditionalUserIds"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}
