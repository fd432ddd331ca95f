package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/fees/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ===================== FEE TYPES ===================== */

type CreateFeeTypeRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=120"`
	Description   *string  `json:"description" validate:"omitempty"`
	DefaultAmount *float64 `json:"default_amount" validate:"omitempty,gt=0"`
}

func (r CreateFeeTypeRequest) ToModel() *model.FeeTypeModel {
	return &model.FeeTypeModel{
		Name:          strings.TrimSpace(r.Name),
		Description:   trimPtr(r.Description),
		DefaultAmount: r.DefaultAmount,
	}
}

type UpdateFeeTypeRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Description   *string  `json:"description" validate:"omitempty"`
	DefaultAmount *float64 `json:"default_amount" validate:"omitempty,gt=0"`
}

func (r *UpdateFeeTypeRequest) ApplyToModel(m *model.FeeTypeModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		m.Description = trimPtr(r.Description)
	}
	if r.DefaultAmount != nil {
		m.DefaultAmount = r.DefaultAmount
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

type FeeTypeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	DefaultAmount *float64  `json:"default_amount,omitempty"`
}

func NewFeeTypeResponse(m *model.FeeTypeModel) *FeeTypeResponse {
	if m == nil {
		return nil
	}
	return &FeeTypeResponse{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		DefaultAmount: m.DefaultAmount,
	}
}

func NewFeeTypeResponses(rows []model.FeeTypeModel) []*FeeTypeResponse {
	resp := make([]*FeeTypeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewFeeTypeResponse(&rows[i]))
	}
	return resp
}

/* ===================== FEES ===================== */

type CreateFeeRequest struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	FeeTypeID     uuid.UUID `json:"fee_type_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaidAmount    float64   `json:"paid_amount" validate:"omitempty,gte=0"`
	Status        string    `json:"status" validate:"required,oneof=pending partial paid overdue"`
	AcademicYear  string    `json:"academic_year" validate:"required,max=20"`
	Semester      string    `json:"semester" validate:"required,max=20"`
	DueDate       string    `json:"due_date" validate:"required"`
	PaidDate      *string   `json:"paid_date" validate:"omitempty"`
	PaymentMethod *string   `json:"payment_method" validate:"omitempty,max=40"`
	Notes         *string   `json:"notes" validate:"omitempty"`
}

type UpdateFeeRequest struct {
	Amount        *float64 `json:"amount" validate:"omitempty,gt=0"`
	PaidAmount    *float64 `json:"paid_amount" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" validate:"omitempty,oneof=pending partial paid overdue"`
	DueDate       *string  `json:"due_date" validate:"omitempty"`
	PaidDate      *string  `json:"paid_date" validate:"omitempty"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=40"`
	Notes         *string  `json:"notes" validate:"omitempty"`
}

type ListFeesQuery struct {
	StudentID    string
	FeeTypeID    string
	Status       string
	AcademicYear string
	Semester     string
	Sort         string
	Page         int
}

func ListFeesFromQueries(q map[string]string) ListFeesQuery {
	return ListFeesQuery{
		StudentID:    q["studentId"],
		FeeTypeID:    q["feeTypeId"],
		Status:       q["status"],
		AcademicYear: q["academicYear"],
		Semester:     q["semester"],
		Sort:         q["sort"],
		Page:         helper.ParsePage(q["page"]),
	}
}

func (q ListFeesQuery) Apply(tx *gorm.DB) *gorm.DB {
	if id, ok := helper.ParseUUID(q.StudentID); ok {
		tx = tx.Where("student_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.FeeTypeID); ok {
		tx = tx.Where("fee_type_id = ?", id)
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		tx = tx.Where("status = ?", s)
	}
	if y := strings.TrimSpace(q.AcademicYear); y != "" {
		tx = tx.Where("academic_year = ?", y)
	}
	if s := strings.TrimSpace(q.Semester); s != "" {
		tx = tx.Where("semester = ?", s)
	}
	switch q.Sort {
	case "due_date_asc":
		tx = tx.Order("due_date ASC")
	case "amount_desc":
		tx = tx.Order("amount DESC")
	default:
		tx = tx.Order("due_date DESC")
	}
	return tx
}

type FeeResponse struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	FeeTypeID     uuid.UUID `json:"fee_type_id"`
	Amount        float64   `json:"amount"`
	PaidAmount    float64   `json:"paid_amount"`
	Status        string    `json:"status"`
	AcademicYear  string    `json:"academic_year"`
	Semester      string    `json:"semester"`
	DueDate       string    `json:"due_date"`
	PaidDate      *string   `json:"paid_date,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

func NewFeeResponse(m *model.FeeModel) *FeeResponse {
	if m == nil {
		return nil
	}
	var paidDate *string
	if m.PaidDate != nil {
		d := time.Time(*m.PaidDate).Format("2006-01-02")
		paidDate = &d
	}
	return &FeeResponse{
		ID:            m.ID,
		StudentID:     m.StudentID,
		FeeTypeID:     m.FeeTypeID,
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		AcademicYear:  m.AcademicYear,
		Semester:      m.Semester,
		DueDate:       time.Time(m.DueDate).Format("2006-01-02"),
		PaidDate:      paidDate,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
	}
}

func NewFeeResponses(rows []model.FeeModel) []*FeeResponse {
	resp := make([]*FeeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewFeeResponse(&rows[i]))
	}
	return resp
}

// DatePtr converts an optional YYYY-MM-DD string.
func DatePtr(s *string) (*datatypes.Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, ok := helper.ParseDate(*s)
	if !ok {
		return nil, errors.New("invalid date")
	}
	d := datatypes.Date(t)
	return &d, nil
}
