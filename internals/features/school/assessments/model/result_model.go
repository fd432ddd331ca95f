package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultModel: exactly one of ExamID/AssignmentID is set; the dto
// refinement rejects anything else.
type ResultModel struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Score int       `gorm:"column:score;not null" json:"score"`

	ExamID       *uuid.UUID `gorm:"column:exam_id;type:uuid;index" json:"exam_id,omitempty"`
	AssignmentID *uuid.UUID `gorm:"column:assignment_id;type:uuid;index" json:"assignment_id,omitempty"`
	StudentID    uuid.UUID  `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ResultModel) TableName() string { return "results" }

func (m *ResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
