package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/announcements/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateAnnouncementRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=160"`
	Description string     `json:"description" validate:"required"`
	Date        time.Time  `json:"date" validate:"required"`
	ClassID     *uuid.UUID `json:"class_id" validate:"omitempty"`
	Attachments []string   `json:"attachments" validate:"omitempty,dive,url"`
}

func (r CreateAnnouncementRequest) ToModel() *model.AnnouncementModel {
	return &model.AnnouncementModel{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Date:        r.Date,
		ClassID:     r.ClassID,
		Attachments: pq.StringArray(r.Attachments),
	}
}

type UpdateAnnouncementRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=160"`
	Description *string    `json:"description" validate:"omitempty"`
	Date        *time.Time `json:"date" validate:"omitempty"`
	ClassID     *uuid.UUID `json:"class_id" validate:"omitempty"`
	Attachments *[]string  `json:"attachments" validate:"omitempty,dive,url"`
}

func (r *UpdateAnnouncementRequest) ApplyToModel(m *model.AnnouncementModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.Date != nil {
		m.Date = *r.Date
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
	if r.Attachments != nil {
		m.Attachments = pq.StringArray(*r.Attachments)
	}
}

type ListAnnouncementsQuery struct {
	Search string
	Sort   string
	Page   int
}

func ListAnnouncementsFromQueries(q map[string]string) ListAnnouncementsQuery {
	return ListAnnouncementsQuery{
		Search: q["search"],
		Sort:   q["sort"],
		Page:   helper.ParsePage(q["page"]),
	}
}

func (q ListAnnouncementsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(title) LIKE ?", helper.SearchPattern(s))
	}
	switch q.Sort {
	case "date_asc":
		tx = tx.Order("date ASC")
	default:
		tx = tx.Order("date DESC")
	}
	return tx
}

type AnnouncementResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	ClassID     *uuid.UUID `json:"class_id,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
	Viewed      bool       `json:"viewed"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
}

func NewAnnouncementResponse(m *model.AnnouncementModel, viewedAt *time.Time) *AnnouncementResponse {
	if m == nil {
		return nil
	}
	return &AnnouncementResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		ClassID:     m.ClassID,
		Attachments: m.Attachments,
		Viewed:      viewedAt != nil,
		ViewedAt:    viewedAt,
	}
}

func NewAnnouncementResponses(rows []model.AnnouncementModel, views map[uuid.UUID]time.Time) []*AnnouncementResponse {
	resp := make([]*AnnouncementResponse, 0, len(rows))
	for i := range rows {
		var viewedAt *time.Time
		if t, ok := views[rows[i].ID]; ok {
			v := t
			viewedAt = &v
		}
		resp = append(resp, NewAnnouncementResponse(&rows[i], viewedAt))
	}
	return resp
}
