package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventModel: scoped exactly like announcements (nil ClassID = global).
type EventModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;type:varchar(160);not null" json:"title"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	StartTime   time.Time  `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime     time.Time  `gorm:"column:end_time;not null" json:"end_time"`
	ClassID     *uuid.UUID `gorm:"column:class_id;type:uuid;index" json:"class_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string { return "events" }

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
