package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/teachers/model"
	helper "schoolhub_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

type CreateTeacherRequest struct {
	Username  string    `json:"username" validate:"required,min=3,max=60"`
	Password  string    `json:"password" validate:"required,min=8,max=72"`
	Name      string    `json:"name" validate:"required,min=1,max=80"`
	Surname   string    `json:"surname" validate:"required,min=1,max=80"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Phone     *string   `json:"phone" validate:"omitempty,max=40"`
	Address   string    `json:"address" validate:"required"`
	Sex       string    `json:"sex" validate:"required,oneof=male female"`
	BirthDate time.Time `json:"birth_date" validate:"required"`

	SubjectIDs []uuid.UUID `json:"subject_ids" validate:"omitempty,dive,required"`
}

func (r CreateTeacherRequest) ToModel(id uuid.UUID) *model.TeacherModel {
	return &model.TeacherModel{
		ID:        id,
		Username:  strings.TrimSpace(r.Username),
		Name:      strings.TrimSpace(r.Name),
		Surname:   strings.TrimSpace(r.Surname),
		Email:     trimPtr(r.Email),
		Phone:     trimPtr(r.Phone),
		Address:   strings.TrimSpace(r.Address),
		Sex:       r.Sex,
		BirthDate: r.BirthDate,
	}
}

type UpdateTeacherRequest struct {
	Username  *string    `json:"username" validate:"omitempty,min=3,max=60"`
	Password  *string    `json:"password" validate:"omitempty,min=8,max=72"`
	Name      *string    `json:"name" validate:"omitempty,min=1,max=80"`
	Surname   *string    `json:"surname" validate:"omitempty,min=1,max=80"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,max=40"`
	Address   *string    `json:"address" validate:"omitempty"`
	Sex       *string    `json:"sex" validate:"omitempty,oneof=male female"`
	BirthDate *time.Time `json:"birth_date" validate:"omitempty"`

	SubjectIDs *[]uuid.UUID `json:"subject_ids" validate:"omitempty,dive,required"`
}

func (r *UpdateTeacherRequest) ApplyToModel(m *model.TeacherModel) {
	if r.Username != nil {
		m.Username = strings.TrimSpace(*r.Username)
	}
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Surname != nil {
		m.Surname = strings.TrimSpace(*r.Surname)
	}
	if r.Email != nil {
		m.Email = trimPtr(r.Email)
	}
	if r.Phone != nil {
		m.Phone = trimPtr(r.Phone)
	}
	if r.Address != nil {
		m.Address = strings.TrimSpace(*r.Address)
	}
	if r.Sex != nil {
		m.Sex = *r.Sex
	}
	if r.BirthDate != nil {
		m.BirthDate = *r.BirthDate
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

/* ===================== LIST QUERY ===================== */

type ListTeachersQuery struct {
	Search    string
	ClassID   string
	SubjectID string
	Sort      string
	Page      int
}

func ListTeachersFromQueries(q map[string]string) ListTeachersQuery {
	return ListTeachersQuery{
		Search:    q["search"],
		ClassID:   q["classId"],
		SubjectID: q["subjectId"],
		Sort:      q["sort"],
		Page:      helper.ParsePage(q["page"]),
	}
}

func (q ListTeachersQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		p := helper.SearchPattern(s)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(username) LIKE ?", p, p, p)
	}
	if id, ok := helper.ParseUUID(q.ClassID); ok {
		tx = tx.Where("id IN (SELECT teacher_id FROM lessons WHERE class_id = ?)", id)
	}
	if id, ok := helper.ParseUUID(q.SubjectID); ok {
		tx = tx.Where("id IN (SELECT teacher_id FROM teacher_subjects WHERE subject_id = ?)", id)
	}

	switch q.Sort {
	case "name_desc":
		tx = tx.Order("name DESC")
	case "surname_asc":
		tx = tx.Order("surname ASC")
	default:
		tx = tx.Order("name ASC")
	}
	return tx
}

/* ===================== RESPONSES ===================== */

type TeacherResponse struct {
	ID         uuid.UUID   `json:"id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Surname    string      `json:"surname"`
	Email      *string     `json:"email,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Address    string      `json:"address"`
	ImageURL   *string     `json:"image_url,omitempty"`
	Sex        string      `json:"sex"`
	BirthDate  time.Time   `json:"birth_date"`
	SubjectIDs []uuid.UUID `json:"subject_ids"`
}

func NewTeacherResponse(m *model.TeacherModel) *TeacherResponse {
	if m == nil {
		return nil
	}
	subjectIDs := make([]uuid.UUID, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		subjectIDs = append(subjectIDs, s.ID)
	}
	return &TeacherResponse{
		ID:         m.ID,
		Username:   m.Username,
		Name:       m.Name,
		Surname:    m.Surname,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		ImageURL:   m.ImageURL,
		Sex:        m.Sex,
		BirthDate:  m.BirthDate,
		SubjectIDs: subjectIDs,
	}
}

func NewTeacherResponses(rows []model.TeacherModel) []*TeacherResponse {
	resp := make([]*TeacherResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewTeacherResponse(&rows[i]))
	}
	return resp
}
