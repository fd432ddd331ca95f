package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeTypeModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(120);not null;uniqueIndex" json:"name"`
	Description   *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	DefaultAmount *float64  `gorm:"column:default_amount;type:numeric" json:"default_amount,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (FeeTypeModel) TableName() string { return "fee_types" }

func (m *FeeTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
