package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(160);not null" json:"title"`
	StartDate time.Time `gorm:"column:start_date;not null" json:"start_date"`
	DueDate   time.Time `gorm:"column:due_date;not null" json:"due_date"`
	LessonID  uuid.UUID `gorm:"column:lesson_id;type:uuid;not null;index" json:"lesson_id"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
