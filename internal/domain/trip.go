package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned trip whose participants declare commitments
type Trip struct {
	BaseModel
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	OrganizerID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_trips_organizer_id" json:"organizer_id"`
	StartDate     *time.Time    `gorm:"type:timestamp" json:"start_date,omitempty"`
	EndDate       *time.Time    `gorm:"type:timestamp" json:"end_date,omitempty"`
	CapacityLimit *int          `gorm:"type:int" json:"capacity_limit,omitempty"` // nil = unlimited
	Participants  []Participant `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
}

// TableName specifies the table name for Trip
func (Trip) TableName() string {
	return "trips"
}
