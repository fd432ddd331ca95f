package model

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementViewModel: one row per (user, announcement). The unique
// index is the upsert key for the idempotent mark-as-seen write.
type AnnouncementViewModel struct {
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	AnnouncementID uuid.UUID `gorm:"column:announcement_id;type:uuid;primaryKey" json:"announcement_id"`
	ViewedAt       time.Time `gorm:"column:viewed_at;not null" json:"viewed_at"`
}

func (AnnouncementViewModel) TableName() string { return "announcement_views" }
