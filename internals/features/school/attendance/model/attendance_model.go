package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceModel: at most one row per (student, calendar day). The
// uniqueness is a write-time pre-check in the service, not a schema
// constraint.
type AttendanceModel struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID      `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`
	LessonID  *uuid.UUID     `gorm:"column:lesson_id;type:uuid;index" json:"lesson_id,omitempty"`
	Date      datatypes.Date `gorm:"column:date;not null;index" json:"date"`
	Present   bool           `gorm:"column:present;not null" json:"present"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
