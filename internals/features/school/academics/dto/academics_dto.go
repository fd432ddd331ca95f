package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ===================== GRADES ===================== */

type CreateGradeRequest struct {
	Level int `json:"level" validate:"required,min=1,max=12"`
}

func (r CreateGradeRequest) ToModel() *model.GradeModel {
	return &model.GradeModel{Level: r.Level}
}

type UpdateGradeRequest struct {
	Level *int `json:"level" validate:"omitempty,min=1,max=12"`
}

func (r *UpdateGradeRequest) ApplyToModel(m *model.GradeModel) {
	if r.Level != nil {
		m.Level = *r.Level
	}
}

type GradeResponse struct {
	ID    uuid.UUID `json:"id"`
	Level int       `json:"level"`
}

func NewGradeResponse(m *model.GradeModel) *GradeResponse {
	if m == nil {
		return nil
	}
	return &GradeResponse{ID: m.ID, Level: m.Level}
}

func NewGradeResponses(rows []model.GradeModel) []*GradeResponse {
	resp := make([]*GradeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewGradeResponse(&rows[i]))
	}
	return resp
}

/* ===================== SUBJECTS ===================== */

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

func (r CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{Name: strings.TrimSpace(r.Name)}
}

type UpdateSubjectRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=120"`
}

func (r *UpdateSubjectRequest) ApplyToModel(m *model.SubjectModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
}

type ListSubjectsQuery struct {
	Search string
	Sort   string
	Page   int
}

func ListSubjectsFromQueries(q map[string]string) ListSubjectsQuery {
	return ListSubjectsQuery{
		Search: q["search"],
		Sort:   q["sort"],
		Page:   helper.ParsePage(q["page"]),
	}
}

func (q ListSubjectsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", helper.SearchPattern(s))
	}
	switch q.Sort {
	case "name_desc":
		tx = tx.Order("name DESC")
	default:
		tx = tx.Order("name ASC")
	}
	return tx
}

type SubjectResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewSubjectResponse(m *model.SubjectModel) *SubjectResponse {
	if m == nil {
		return nil
	}
	return &SubjectResponse{ID: m.ID, Name: m.Name}
}

func NewSubjectResponses(rows []model.SubjectModel) []*SubjectResponse {
	resp := make([]*SubjectResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewSubjectResponse(&rows[i]))
	}
	return resp
}
