package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/lessons/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateLessonRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=120"`
	Day       string    `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

func (r CreateLessonRequest) ToModel() *model.LessonModel {
	return &model.LessonModel{
		Name:      strings.TrimSpace(r.Name),
		Day:       r.Day,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		SubjectID: r.SubjectID,
		ClassID:   r.ClassID,
		TeacherID: r.TeacherID,
	}
}

type UpdateLessonRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Day       *string    `json:"day" validate:"omitempty,oneof=monday tuesday wednesday thursday friday"`
	StartTime *time.Time `json:"start_time" validate:"omitempty"`
	EndTime   *time.Time `json:"end_time" validate:"omitempty"`
	SubjectID *uuid.UUID `json:"subject_id" validate:"omitempty"`
	ClassID   *uuid.UUID `json:"class_id" validate:"omitempty"`
	TeacherID *uuid.UUID `json:"teacher_id" validate:"omitempty"`
}

func (r *UpdateLessonRequest) ApplyToModel(m *model.LessonModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Day != nil {
		m.Day = *r.Day
	}
	if r.StartTime != nil {
		m.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		m.EndTime = *r.EndTime
	}
	if r.SubjectID != nil {
		m.SubjectID = *r.SubjectID
	}
	if r.ClassID != nil {
		m.ClassID = *r.ClassID
	}
	if r.TeacherID != nil {
		m.TeacherID = *r.TeacherID
	}
}

type ListLessonsQuery struct {
	Search    string
	ClassID   string
	TeacherID string
	Day       string
	Sort      string
	Page      int
}

func ListLessonsFromQueries(q map[string]string) ListLessonsQuery {
	return ListLessonsQuery{
		Search:    q["search"],
		ClassID:   q["classId"],
		TeacherID: q["teacherId"],
		Day:       q["day"],
		Sort:      q["sort"],
		Page:      helper.ParsePage(q["page"]),
	}
}

func (q ListLessonsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", helper.SearchPattern(s))
	}
	if id, ok := helper.ParseUUID(q.ClassID); ok {
		tx = tx.Where("class_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.TeacherID); ok {
		tx = tx.Where("teacher_id = ?", id)
	}
	if d := strings.ToLower(strings.TrimSpace(q.Day)); d != "" {
		tx = tx.Where("day = ?", d)
	}
	switch q.Sort {
	case "name_asc":
		tx = tx.Order("name ASC")
	case "name_desc":
		tx = tx.Order("name DESC")
	default:
		tx = tx.Order("day ASC, start_time ASC")
	}
	return tx
}

type LessonResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Day       string    `json:"day"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	SubjectID uuid.UUID `json:"subject_id"`
	ClassID   uuid.UUID `json:"class_id"`
	TeacherID uuid.UUID `json:"teacher_id"`
}

func NewLessonResponse(m *model.LessonModel) *LessonResponse {
	if m == nil {
		return nil
	}
	return &LessonResponse{
		ID:        m.ID,
		Name:      m.Name,
		Day:       m.Day,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		SubjectID: m.SubjectID,
		ClassID:   m.ClassID,
		TeacherID: m.TeacherID,
	}
}

func NewLessonResponses(rows []model.LessonModel) []*LessonResponse {
	resp := make([]*LessonResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewLessonResponse(&rows[i]))
	}
	return resp
}
