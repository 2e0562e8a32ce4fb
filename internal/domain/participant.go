package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"trip-roster-api/internal/commitment"
)

// Participant represents one user's commitment record on a trip
type Participant struct {
	BaseModel
	TripID             uuid.UUID                  `gorm:"type:uuid;not null;index:idx_trip_participants_trip_id;uniqueIndex:uq_trip_participants_trip_user" json:"trip_id"`
	UserID             uuid.UUID                  `gorm:"type:uuid;not null;index:idx_trip_participants_user_id;uniqueIndex:uq_trip_participants_trip_user" json:"user_id"`
	Role               commitment.Role            `gorm:"type:varchar(20);not null;default:'participant'" json:"role"`
	FullName           string                     `gorm:"type:varchar(255)" json:"full_name"`
	Email              string                     `gorm:"type:varchar(255)" json:"email"`
	ConfirmationStatus commitment.Status          `gorm:"type:varchar(20);not null;default:'pending';index:idx_trip_participants_status" json:"confirmation_status"`
	ConfirmedAt        *time.Time                 `gorm:"type:timestamp" json:"confirmed_at,omitempty"`
	ConfirmationNote   string                     `gorm:"type:text" json:"confirmation_note"`
	ConditionalType    commitment.ConditionalType `gorm:"type:varchar(10);not null;default:'none'" json:"conditional_type"`
	ConditionalDate    *time.Time                 `gorm:"type:timestamp" json:"conditional_date,omitempty"`
	// JSON array of user IDs this participant is waiting on, in the order chosen
	ConditionalUserIDs datatypes.JSON `gorm:"type:jsonb" json:"conditional_user_ids"`
	// last CONDITIONS_MET reminder; cleared whenever the commitment changes
	ConditionsRemindedAt *time.Time `gorm:"type:timestamp" json:"conditions_reminded_at,omitempty"`
	Trip                 *Trip      `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"trip,omitempty"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "trip_participants"
}

// DependencyIDs decodes ConditionalUserIDs. Unreadable data yields no
// dependencies rather than an error.
func (p *Participant) DependencyIDs() []uuid.UUID {
	if len(p.ConditionalUserIDs) == 0 {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(p.ConditionalUserIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// SetDependencyIDs encodes ids into ConditionalUserIDs
func (p *Participant) SetDependencyIDs(ids []uuid.UUID) {
	if len(ids) == 0 {
		p.ConditionalUserIDs = datatypes.JSON("[]")
		return
	}
	data, _ := json.Marshal(ids)
	p.ConditionalUserIDs = datatypes.JSON(data)
}

// ToCommitment projects the stored row onto the engine's participant view
func (p *Participant) ToCommitment() *commitment.Participant {
	return &commitment.Participant{
		UserID:             p.UserID,
		TripID:             p.TripID,
		Role:               p.Role,
		Status:             p.ConfirmationStatus,
		ConfirmedAt:        p.ConfirmedAt,
		Note:               p.ConfirmationNote,
		ConditionalType:    p.ConditionalType,
		ConditionalDate:    p.ConditionalDate,
		ConditionalUserIDs: p.DependencyIDs(),
		UpdatedAt:          p.UpdatedAt,
		FullName:           p.FullName,
		Email:              p.Email,
	}
}

// ToCommitmentSnapshot converts a full trip snapshot, preserving order
func ToCommitmentSnapshot(participants []*Participant) []*commitment.Participant {
	out := make([]*commitment.Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, p.ToCommitment())
	}
	return out
}
