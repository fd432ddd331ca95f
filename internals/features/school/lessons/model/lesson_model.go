package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonModel is the join point that derives "the classes a teacher
// teaches" for lesson-based scope rules.
type LessonModel struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;type:varchar(120);not null" json:"name"`

	// Day is one of monday..friday.
	Day       string    `gorm:"column:day;type:varchar(10);not null" json:"day"`
	StartTime time.Time `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;not null" json:"end_time"`

	SubjectID uuid.UUID `gorm:"column:subject_id;type:uuid;not null;index" json:"subject_id"`
	ClassID   uuid.UUID `gorm:"column:class_id;type:uuid;not null;index" json:"class_id"`
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;not null;index" json:"teacher_id"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
