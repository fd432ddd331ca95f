package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AnnouncementModel: ClassID == nil means the announcement is global
// (visible to every role, subject to the scope rules).
type AnnouncementModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;type:varchar(160);not null" json:"title"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	Date        time.Time  `gorm:"column:date;not null;index" json:"date"`
	ClassID     *uuid.UUID `gorm:"column:class_id;type:uuid;index" json:"class_id,omitempty"`

	Attachments pq.StringArray `gorm:"column:attachments;type:text[]" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
