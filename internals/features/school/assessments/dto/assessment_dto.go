package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/assessments/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ===================== EXAMS ===================== */

type CreateExamRequest struct {
	Title     string    `json:"title" validate:"required,min=1,max=160"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	LessonID  uuid.UUID `json:"lesson_id" validate:"required"`
}

func (r CreateExamRequest) ToModel() *model.ExamModel {
	return &model.ExamModel{
		Title:     strings.TrimSpace(r.Title),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		LessonID:  r.LessonID,
	}
}

type UpdateExamRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=160"`
	StartTime *time.Time `json:"start_time" validate:"omitempty"`
	EndTime   *time.Time `json:"end_time" validate:"omitempty"`
	LessonID  *uuid.UUID `json:"lesson_id" validate:"omitempty"`
}

func (r *UpdateExamRequest) ApplyToModel(m *model.ExamModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.StartTime != nil {
		m.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		m.EndTime = *r.EndTime
	}
	if r.LessonID != nil {
		m.LessonID = *r.LessonID
	}
}

type ExamResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	LessonID  uuid.UUID `json:"lesson_id"`
}

func NewExamResponse(m *model.ExamModel) *ExamResponse {
	if m == nil {
		return nil
	}
	return &ExamResponse{
		ID:        m.ID,
		Title:     m.Title,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		LessonID:  m.LessonID,
	}
}

func NewExamResponses(rows []model.ExamModel) []*ExamResponse {
	resp := make([]*ExamResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewExamResponse(&rows[i]))
	}
	return resp
}

/* ===================== ASSIGNMENTS ===================== */

type CreateAssignmentRequest struct {
	Title     string    `json:"title" validate:"required,min=1,max=160"`
	StartDate time.Time `json:"start_date" validate:"required"`
	DueDate   time.Time `json:"due_date" validate:"required"`
	LessonID  uuid.UUID `json:"lesson_id" validate:"required"`
}

func (r CreateAssignmentRequest) ToModel() *model.AssignmentModel {
	return &model.AssignmentModel{
		Title:     strings.TrimSpace(r.Title),
		StartDate: r.StartDate,
		DueDate:   r.DueDate,
		LessonID:  r.LessonID,
	}
}

type UpdateAssignmentRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=160"`
	StartDate *time.Time `json:"start_date" validate:"omitempty"`
	DueDate   *time.Time `json:"due_date" validate:"omitempty"`
	LessonID  *uuid.UUID `json:"lesson_id" validate:"omitempty"`
}

func (r *UpdateAssignmentRequest) ApplyToModel(m *model.AssignmentModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.StartDate != nil {
		m.StartDate = *r.StartDate
	}
	if r.DueDate != nil {
		m.DueDate = *r.DueDate
	}
	if r.LessonID != nil {
		m.LessonID = *r.LessonID
	}
}

type AssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	DueDate   time.Time `json:"due_date"`
	LessonID  uuid.UUID `json:"lesson_id"`
}

func NewAssignmentResponse(m *model.AssignmentModel) *AssignmentResponse {
	if m == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:        m.ID,
		Title:     m.Title,
		StartDate: m.StartDate,
		DueDate:   m.DueDate,
		LessonID:  m.LessonID,
	}
}

func NewAssignmentResponses(rows []model.AssignmentModel) []*AssignmentResponse {
	resp := make([]*AssignmentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewAssignmentResponse(&rows[i]))
	}
	return resp
}

/* ===================== RESULTS ===================== */

type CreateResultRequest struct {
	Score        int        `json:"score" validate:"min=0,max=100"`
	ExamID       *uuid.UUID `json:"exam_id" validate:"omitempty"`
	AssignmentID *uuid.UUID `json:"assignment_id" validate:"omitempty"`
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
}

// ExactlyOneTarget enforces the exam-or-assignment shape.
func (r CreateResultRequest) ExactlyOneTarget() bool {
	return (r.ExamID != nil) != (r.AssignmentID != nil)
}

func (r CreateResultRequest) ToModel() *model.ResultModel {
	return &model.ResultModel{
		Score:        r.Score,
		ExamID:       r.ExamID,
		AssignmentID: r.AssignmentID,
		StudentID:    r.StudentID,
	}
}

type UpdateResultRequest struct {
	Score *int `json:"score" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateResultRequest) ApplyToModel(m *model.ResultModel) {
	if r.Score != nil {
		m.Score = *r.Score
	}
}

type ResultResponse struct {
	ID           uuid.UUID  `json:"id"`
	Score        int        `json:"score"`
	ExamID       *uuid.UUID `json:"exam_id,omitempty"`
	AssignmentID *uuid.UUID `json:"assignment_id,omitempty"`
	StudentID    uuid.UUID  `json:"student_id"`
}

func NewResultResponse(m *model.ResultModel) *ResultResponse {
	if m == nil {
		return nil
	}
	return &ResultResponse{
		ID:           m.ID,
		Score:        m.Score,
		ExamID:       m.ExamID,
		AssignmentID: m.AssignmentID,
		StudentID:    m.StudentID,
	}
}

func NewResultResponses(rows []model.ResultModel) []*ResultResponse {
	resp := make([]*ResultResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewResultResponse(&rows[i]))
	}
	return resp
}

/* ===================== LIST QUERIES ===================== */

type ListAssessmentsQuery struct {
	Search   string
	LessonID string
	Sort     string
	Page     int
}

func ListAssessmentsFromQueries(q map[string]string) ListAssessmentsQuery {
	return ListAssessmentsQuery{
		Search:   q["search"],
		LessonID: q["lessonId"],
		Sort:     q["sort"],
		Page:     helper.ParsePage(q["page"]),
	}
}

func (q ListAssessmentsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(title) LIKE ?", helper.SearchPattern(s))
	}
	if id, ok := helper.ParseUUID(q.LessonID); ok {
		tx = tx.Where("lesson_id = ?", id)
	}
	switch q.Sort {
	case "title_asc":
		tx = tx.Order("title ASC")
	case "title_desc":
		tx = tx.Order("title DESC")
	default:
		tx = tx.Order("created_at DESC")
	}
	return tx
}

type ListResultsQuery struct {
	StudentID    string
	ExamID       string
	AssignmentID string
	Sort         string
	Page         int
}

func ListResultsFromQueries(q map[string]string) ListResultsQuery {
	return ListResultsQuery{
		StudentID:    q["studentId"],
		ExamID:       q["examId"],
		AssignmentID: q["assignmentId"],
		Sort:         q["sort"],
		Page:         helper.ParsePage(q["page"]),
	}
}

func (q ListResultsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if id, ok := helper.ParseUUID(q.StudentID); ok {
		tx = tx.Where("student_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.ExamID); ok {
		tx = tx.Where("exam_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.AssignmentID); ok {
		tx = tx.Where("assignment_id = ?", id)
	}
	switch q.Sort {
	case "score_asc":
		tx = tx.Order("score ASC")
	case "score_desc":
		tx = tx.Order("score DESC")
	default:
		tx = tx.Order("created_at DESC")
	}
	return tx
}
