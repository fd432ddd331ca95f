package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/attendance/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateAttendanceRequest struct {
	StudentID uuid.UUID  `json:"student_id" validate:"required"`
	LessonID  *uuid.UUID `json:"lesson_id" validate:"omitempty"`
	Date      string     `json:"date" validate:"required"`
	Present   *bool      `json:"present" validate:"required"`
}

func (r CreateAttendanceRequest) ToModel(date time.Time) *model.AttendanceModel {
	return &model.AttendanceModel{
		StudentID: r.StudentID,
		LessonID:  r.LessonID,
		Date:      datatypes.Date(date),
		Present:   *r.Present,
	}
}

type UpdateAttendanceRequest struct {
	Present *bool `json:"present" validate:"required"`
}

type ListAttendanceQuery struct {
	StudentID string
	ClassID   string
	DateFrom  string
	DateTo    string
	Sort      string
	Page      int
}

func ListAttendanceFromQueries(q map[string]string) ListAttendanceQuery {
	return ListAttendanceQuery{
		StudentID: q["studentId"],
		ClassID:   q["classId"],
		DateFrom:  q["dateFrom"],
		DateTo:    q["dateTo"],
		Sort:      q["sort"],
		Page:      helper.ParsePage(q["page"]),
	}
}

func (q ListAttendanceQuery) Apply(tx *gorm.DB) *gorm.DB {
	if id, ok := helper.ParseUUID(q.StudentID); ok {
		tx = tx.Where("student_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.ClassID); ok {
		tx = tx.Where("student_id IN (SELECT id FROM students WHERE class_id = ?)", id)
	}
	if d, ok := helper.ParseDate(q.DateFrom); ok {
		tx = tx.Where("date >= ?", datatypes.Date(d))
	}
	if d, ok := helper.ParseDate(q.DateTo); ok {
		tx = tx.Where("date <= ?", datatypes.Date(d))
	}
	switch q.Sort {
	case "date_asc":
		tx = tx.Order("date ASC")
	default:
		tx = tx.Order("date DESC")
	}
	return tx
}

type AttendanceResponse struct {
	ID        uuid.UUID  `json:"id"`
	StudentID uuid.UUID  `json:"student_id"`
	LessonID  *uuid.UUID `json:"lesson_id,omitempty"`
	Date      string     `json:"date"`
	Present   bool       `json:"present"`
}

func NewAttendanceResponse(m *model.AttendanceModel) *AttendanceResponse {
	if m == nil {
		return nil
	}
	return &AttendanceResponse{
		ID:        m.ID,
		StudentID: m.StudentID,
		LessonID:  m.LessonID,
		Date:      time.Time(m.Date).Format("2006-01-02"),
		Present:   m.Present,
	}
}

func NewAttendanceResponses(rows []model.AttendanceModel) []*AttendanceResponse {
	resp := make([]*AttendanceResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewAttendanceResponse(&rows[i]))
	}
	return resp
}
