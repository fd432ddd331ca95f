package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentModel mirrors the identity-provider user by id: the primary
// key is assigned by the provider during the two-phase create, never
// generated locally.
type StudentModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"column:username;type:varchar(60);not null;uniqueIndex" json:"username"`
	Name     string    `gorm:"column:name;type:varchar(80);not null" json:"name"`
	Surname  string    `gorm:"column:surname;type:varchar(80);not null" json:"surname"`
	Email    *string   `gorm:"column:email;type:varchar(160)" json:"email,omitempty"`
	Phone    *string   `gorm:"column:phone;type:varchar(40)" json:"phone,omitempty"`
	Address  string    `gorm:"column:address;type:text;not null" json:"address"`
	ImageURL *string   `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	Sex      string    `gorm:"column:sex;type:varchar(10);not null" json:"sex"`

	BirthDate time.Time `gorm:"column:birth_date;not null" json:"birth_date"`

	ClassID  uuid.UUID `gorm:"column:class_id;type:uuid;not null;index" json:"class_id"`
	GradeID  uuid.UUID `gorm:"column:grade_id;type:uuid;not null;index" json:"grade_id"`
	ParentID uuid.UUID `gorm:"column:parent_id;type:uuid;not null;index" json:"parent_id"`

	// RollNo is unique within a class; checked by the service before
	// insert, not by the schema.
	RollNo int `gorm:"column:roll_no;not null" json:"roll_no"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }
