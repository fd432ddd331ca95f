package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel: a homeroom group. SupervisorID is the supervising
// teacher and is the canonical link for "a teacher's students".
// Capacity is enforced at write time by the students service, not by
// the schema.
type ClassModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"column:name;type:varchar(60);not null;uniqueIndex" json:"name"`
	Capacity     int        `gorm:"column:capacity;not null" json:"capacity"`
	GradeID      uuid.UUID  `gorm:"column:grade_id;type:uuid;not null;index" json:"grade_id"`
	SupervisorID *uuid.UUID `gorm:"column:supervisor_id;type:uuid;index" json:"supervisor_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
