package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BehaviorModel is the catalog entry; Points is always positive and
// IsNegative carries the sign.
type BehaviorModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"column:title;type:varchar(160);not null" json:"title"`
	Points     int       `gorm:"column:points;not null" json:"points"`
	IsNegative bool      `gorm:"column:is_negative;not null" json:"is_negative"`
	Category   *string   `gorm:"column:category;type:varchar(60)" json:"category,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (BehaviorModel) TableName() string { return "behaviors" }

func (m *BehaviorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
