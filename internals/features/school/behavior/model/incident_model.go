package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IncidentModel records one occurrence of a catalog behavior for a
// student, assigned by a staff member.
type IncidentModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StudentID  uuid.UUID      `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`
	BehaviorID uuid.UUID      `gorm:"column:behavior_id;type:uuid;not null;index" json:"behavior_id"`
	GivenByID  uuid.UUID      `gorm:"column:given_by_id;type:uuid;not null" json:"given_by_id"`
	Date       datatypes.Date `gorm:"column:date;not null" json:"date"`
	Comment    *string        `gorm:"column:comment;type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (IncidentModel) TableName() string { return "incidents" }

func (m *IncidentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
