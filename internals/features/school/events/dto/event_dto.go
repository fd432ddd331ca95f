package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/events/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=160"`
	Description string     `json:"description" validate:"required"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required"`
	ClassID     *uuid.UUID `json:"class_id" validate:"omitempty"`
}

func (r CreateEventRequest) ToModel() *model.EventModel {
	return &model.EventModel{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		ClassID:     r.ClassID,
	}
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=160"`
	Description *string    `json:"description" validate:"omitempty"`
	StartTime   *time.Time `json:"start_time" validate:"omitempty"`
	EndTime     *time.Time `json:"end_time" validate:"omitempty"`
	ClassID     *uuid.UUID `json:"class_id" validate:"omitempty"`
}

func (r *UpdateEventRequest) ApplyToModel(m *model.EventModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.StartTime != nil {
		m.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		m.EndTime = *r.EndTime
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
}

type ListEventsQuery struct {
	Search string
	Sort   string
	Page   int
}

func ListEventsFromQueries(q map[string]string) ListEventsQuery {
	return ListEventsQuery{
		Search: q["search"],
		Sort:   q["sort"],
		Page:   helper.ParsePage(q["page"]),
	}
}

func (q ListEventsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(title) LIKE ?", helper.SearchPattern(s))
	}
	switch q.Sort {
	case "start_asc":
		tx = tx.Order("start_time ASC")
	default:
		tx = tx.Order("start_time DESC")
	}
	return tx
}

type EventResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	ClassID     *uuid.UUID `json:"class_id,omitempty"`
}

func NewEventResponse(m *model.EventModel) *EventResponse {
	if m == nil {
		return nil
	}
	return &EventResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		ClassID:     m.ClassID,
	}
}

func NewEventResponses(rows []model.EventModel) []*EventResponse {
	resp := make([]*EventResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewEventResponse(&rows[i]))
	}
	return resp
}
