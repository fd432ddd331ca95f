package model

import (
	"time"

	"github.com/google/uuid"
)

// ParentModel mirrors the identity-provider user by id (two-phase
// create). Students link back via parent_id.
type ParentModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"column:username;type:varchar(60);not null;uniqueIndex" json:"username"`
	Name     string    `gorm:"column:name;type:varchar(80);not null" json:"name"`
	Surname  string    `gorm:"column:surname;type:varchar(80);not null" json:"surname"`
	Email    *string   `gorm:"column:email;type:varchar(160)" json:"email,omitempty"`
	Phone    string    `gorm:"column:phone;type:varchar(40);not null" json:"phone"`
	Address  string    `gorm:"column:address;type:text;not null" json:"address"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ParentModel) TableName() string { return "parents" }
