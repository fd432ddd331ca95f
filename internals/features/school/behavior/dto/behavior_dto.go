package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/behavior/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ===================== BEHAVIOR CATALOG ===================== */

type CreateBehaviorRequest struct {
	Title      string  `json:"title" validate:"required,min=1,max=160"`
	Points     int     `json:"points" validate:"required,gt=0"`
	IsNegative *bool   `json:"is_negative" validate:"required"`
	Category   *string `json:"category" validate:"omitempty,max=60"`
}

func (r CreateBehaviorRequest) ToModel() *model.BehaviorModel {
	return &model.BehaviorModel{
		Title:      strings.TrimSpace(r.Title),
		Points:     r.Points,
		IsNegative: *r.IsNegative,
		Category:   trimPtr(r.Category),
	}
}

type UpdateBehaviorRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=160"`
	Points     *int    `json:"points" validate:"omitempty,gt=0"`
	IsNegative *bool   `json:"is_negative" validate:"omitempty"`
	Category   *string `json:"category" validate:"omitempty,max=60"`
}

func (r *UpdateBehaviorRequest) ApplyToModel(m *model.BehaviorModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Points != nil {
		m.Points = *r.Points
	}
	if r.IsNegative != nil {
		m.IsNegative = *r.IsNegative
	}
	if r.Category != nil {
		m.Category = trimPtr(r.Category)
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

type BehaviorResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Points     int       `json:"points"`
	IsNegative bool      `json:"is_negative"`
	Category   *string   `json:"category,omitempty"`
}

func NewBehaviorResponse(m *model.BehaviorModel) *BehaviorResponse {
	if m == nil {
		return nil
	}
	return &BehaviorResponse{
		ID:         m.ID,
		Title:      m.Title,
		Points:     m.Points,
		IsNegative: m.IsNegative,
		Category:   m.Category,
	}
}

func NewBehaviorResponses(rows []model.BehaviorModel) []*BehaviorResponse {
	resp := make([]*BehaviorResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewBehaviorResponse(&rows[i]))
	}
	return resp
}

/* ===================== INCIDENTS ===================== */

type CreateIncidentRequest struct {
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	BehaviorID uuid.UUID `json:"behavior_id" validate:"required"`
	Date       string    `json:"date" validate:"required"`
	Comment    *string   `json:"comment" validate:"omitempty"`
}

type UpdateIncidentRequest struct {
	Date    *string `json:"date" validate:"omitempty"`
	Comment *string `json:"comment" validate:"omitempty"`
}

type ListIncidentsQuery struct {
	StudentID  string
	BehaviorID string
	DateFrom   string
	DateTo     string
	Sort       string
	Page       int
}

func ListIncidentsFromQueries(q map[string]string) ListIncidentsQuery {
	return ListIncidentsQuery{
		StudentID:  q["studentId"],
		BehaviorID: q["behaviorId"],
		DateFrom:   q["dateFrom"],
		DateTo:     q["dateTo"],
		Sort:       q["sort"],
		Page:       helper.ParsePage(q["page"]),
	}
}

func (q ListIncidentsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if id, ok := helper.ParseUUID(q.StudentID); ok {
		tx = tx.Where("student_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.BehaviorID); ok {
		tx = tx.Where("behavior_id = ?", id)
	}
	if d, ok := helper.ParseDate(q.DateFrom); ok {
		tx = tx.Where("date >= ?", d)
	}
	if d, ok := helper.ParseDate(q.DateTo); ok {
		tx = tx.Where("date <= ?", d)
	}
	switch q.Sort {
	case "date_asc":
		tx = tx.Order("date ASC")
	default:
		tx = tx.Order("date DESC")
	}
	return tx
}

type IncidentResponse struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	BehaviorID uuid.UUID `json:"behavior_id"`
	GivenByID  uuid.UUID `json:"given_by_id"`
	Date       string    `json:"date"`
	Comment    *string   `json:"comment,omitempty"`
}

func NewIncidentResponse(m *model.IncidentModel) *IncidentResponse {
	if m == nil {
		return nil
	}
	return &IncidentResponse{
		ID:         m.ID,
		StudentID:  m.StudentID,
		BehaviorID: m.BehaviorID,
		GivenByID:  m.GivenByID,
		Date:       time.Time(m.Date).Format("2006-01-02"),
		Comment:    m.Comment,
	}
}

func NewIncidentResponses(rows []model.IncidentModel) []*IncidentResponse {
	resp := make([]*IncidentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewIncidentResponse(&rows[i]))
	}
	return resp
}

// BehaviorSummaryResponse: the signed point balance for one student.
type BehaviorSummaryResponse struct {
	StudentID     uuid.UUID `json:"student_id"`
	TotalPoints   int       `json:"total_points"`
	PositiveCount int64     `json:"positive_count"`
	NegativeCount int64     `json:"negative_count"`
	IncidentCount int64     `json:"incident_count"`
}
