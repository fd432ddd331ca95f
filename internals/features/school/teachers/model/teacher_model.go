package model

import (
	"time"

	"github.com/google/uuid"

	academicsModel "schoolhub_backend/internals/features/school/academics/model"
)

// TeacherModel mirrors the identity-provider user by id (two-phase
// create, same as students).
type TeacherModel struct {
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

	Subjects []academicsModel.SubjectModel `gorm:"many2many:teacher_subjects;joinForeignKey:TeacherID;joinReferences:SubjectID" json:"subjects,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (TeacherModel) TableName() string { return "teachers" }
