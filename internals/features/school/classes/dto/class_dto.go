package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/classes/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateClassRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=60"`
	Capacity     int        `json:"capacity" validate:"required,min=1,max=200"`
	GradeID      uuid.UUID  `json:"grade_id" validate:"required"`
	SupervisorID *uuid.UUID `json:"supervisor_id" validate:"omitempty"`
}

func (r CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		Name:         strings.TrimSpace(r.Name),
		Capacity:     r.Capacity,
		GradeID:      r.GradeID,
		SupervisorID: r.SupervisorID,
	}
}

type UpdateClassRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=60"`
	Capacity     *int       `json:"capacity" validate:"omitempty,min=1,max=200"`
	GradeID      *uuid.UUID `json:"grade_id" validate:"omitempty"`
	SupervisorID *uuid.UUID `json:"supervisor_id" validate:"omitempty"`
}

func (r *UpdateClassRequest) ApplyToModel(m *model.ClassModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
	if r.GradeID != nil {
		m.GradeID = *r.GradeID
	}
	if r.SupervisorID != nil {
		m.SupervisorID = r.SupervisorID
	}
}

type ListClassesQuery struct {
	Search       string
	GradeID      string
	SupervisorID string
	Sort         string
	Page         int
}

func ListClassesFromQueries(q map[string]string) ListClassesQuery {
	return ListClassesQuery{
		Search:       q["search"],
		GradeID:      q["gradeId"],
		SupervisorID: q["supervisorId"],
		Sort:         q["sort"],
		Page:         helper.ParsePage(q["page"]),
	}
}

func (q ListClassesQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", helper.SearchPattern(s))
	}
	if id, ok := helper.ParseUUID(q.GradeID); ok {
		tx = tx.Where("grade_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.SupervisorID); ok {
		tx = tx.Where("supervisor_id = ?", id)
	}
	switch q.Sort {
	case "name_desc":
		tx = tx.Order("name DESC")
	case "capacity_asc":
		tx = tx.Order("capacity ASC")
	default:
		tx = tx.Order("name ASC")
	}
	return tx
}

type ClassResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Capacity     int        `json:"capacity"`
	GradeID      uuid.UUID  `json:"grade_id"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty"`
	Enrolled     int64      `json:"enrolled"`
}

func NewClassResponse(m *model.ClassModel, enrolled int64) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ID:           m.ID,
		Name:         m.Name,
		Capacity:     m.Capacity,
		GradeID:      m.GradeID,
		SupervisorID: m.SupervisorID,
		Enrolled:     enrolled,
	}
}
