package dto

import (
	"time"

	"github.com/google/uuid"
)

// Warning codes returned alongside a saved commitment
const (
	WarningCapacityFull     = "CAPACITY_FULL"
	WarningMutualDependency = "MUTUAL_DEPENDENCY"
)

// UpdateCommitmentRequest is the caller's new commitment on a trip
// @Description conditionalType, conditionalDate and conditionalUserIds are only read when status is conditional.
type UpdateCommitmentRequest struct {
	Status             string      `json:"status" binding:"required" example:"conditional"`
	Note               string      `json:"note" binding:"max=500" example:"Only if I get the Friday off"`
	ConditionalType    string      `json:"conditionalType" example:"both"`
	ConditionalDate    *time.Time  `json:"conditionalDate,omitempty" example:"2026-03-20T00:00:00Z"`
	ConditionalUserIDs []uuid.UUID `json:"conditionalUserIds,omitempty"`
}

// Warning is advisory; it never blocks the save it accompanies
type Warning struct {
	Code    string     `json:"code" example:"MUTUAL_DEPENDENCY"`
	Message string     `json:"message"`
	UserID  *uuid.UUID `json:"userId,omitempty"`
}

// UpdateCommitmentResponse carries the saved row and any warnings
type UpdateCommitmentResponse struct {
	Participant *ParticipantResponse `json:"participant"`
	Warnings    []Warning            `json:"warnings"`
}

// DependencyCheckRequest lists the ids the caller is about to wait on
type DependencyCheckRequest struct {
	UserIDs []uuid.UUID `json:"userIds" binding:"required,min=1,max=50"`
}

// DependencyCheckResult flags one candidate
type DependencyCheckResult struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName,omitempty"`
	Mutual      bool      `json:"mutual"`
}

// DependencyCheckResponse holds one result per requested id, in request order
type DependencyCheckResponse struct {
	Results []DependencyCheckResult `json:"results"`
}
