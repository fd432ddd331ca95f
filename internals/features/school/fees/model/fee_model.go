package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FeeStatusPending = "pending"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
	FeeStatusOverdue = "overdue"
)

// FeeModel: at most one fee per (student, fee type, academic year,
// semester); the service pre-checks the period key before insert.
// Status rules: paid requires paid_amount >= amount, partial requires
// 0 < paid_amount < amount, any other status keeps the payment fields
// empty.
type FeeModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;not null;index" json:"student_id"`
	FeeTypeID uuid.UUID `gorm:"column:fee_type_id;type:uuid;not null;index" json:"fee_type_id"`

	Amount     float64 `gorm:"column:amount;type:numeric;not null" json:"amount"`
	PaidAmount float64 `gorm:"column:paid_amount;type:numeric;not null;default:0" json:"paid_amount"`
	Status     string  `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`

	AcademicYear string `gorm:"column:academic_year;type:varchar(20);not null;index" json:"academic_year"`
	Semester     string `gorm:"column:semester;type:varchar(20);not null;index" json:"semester"`

	DueDate       datatypes.Date  `gorm:"column:due_date;not null" json:"due_date"`
	PaidDate      *datatypes.Date `gorm:"column:paid_date" json:"paid_date,omitempty"`
	PaymentMethod *string         `gorm:"column:payment_method;type:varchar(40)" json:"payment_method,omitempty"`
	Notes         *string         `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (FeeModel) TableName() string { return "fees" }

func (m *FeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
