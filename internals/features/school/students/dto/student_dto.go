package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/students/model"
	helper "schoolhub_backend/internals/helpers"

	"schoolhub_backend/internals/constants"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	Username  string    `json:"username" validate:"required,min=3,max=60"`
	Password  string    `json:"password" validate:"required,min=8,max=72"`
	Name      string    `json:"name" validate:"required,min=1,max=80"`
	Surname   string    `json:"surname" validate:"required,min=1,max=80"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Phone     *string   `json:"phone" validate:"omitempty,max=40"`
	Address   string    `json:"address" validate:"required"`
	Sex       string    `json:"sex" validate:"required,oneof=male female"`
	BirthDate time.Time `json:"birth_date" validate:"required"`

	ClassID  uuid.UUID `json:"class_id" validate:"required"`
	GradeID  uuid.UUID `json:"grade_id" validate:"required"`
	ParentID uuid.UUID `json:"parent_id" validate:"required"`
	RollNo   int       `json:"roll_no" validate:"required,gt=0"`
}

func (r CreateStudentRequest) ToModel(id uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		ID:        id,
		Username:  strings.TrimSpace(r.Username),
		Name:      strings.TrimSpace(r.Name),
		Surname:   strings.TrimSpace(r.Surname),
		Email:     trimPtr(r.Email),
		Phone:     trimPtr(r.Phone),
		Address:   strings.TrimSpace(r.Address),
		Sex:       r.Sex,
		BirthDate: r.BirthDate,
		ClassID:   r.ClassID,
		GradeID:   r.GradeID,
		ParentID:  r.ParentID,
		RollNo:    r.RollNo,
	}
}

// Update: all optional (partial update). Password goes only to the
// identity provider, never the local row.
type UpdateStudentRequest struct {
	Username  *string    `json:"username" validate:"omitempty,min=3,max=60"`
	Password  *string    `json:"password" validate:"omitempty,min=8,max=72"`
	Name      *string    `json:"name" validate:"omitempty,min=1,max=80"`
	Surname   *string    `json:"surname" validate:"omitempty,min=1,max=80"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,max=40"`
	Address   *string    `json:"address" validate:"omitempty"`
	Sex       *string    `json:"sex" validate:"omitempty,oneof=male female"`
	BirthDate *time.Time `json:"birth_date" validate:"omitempty"`

	ClassID  *uuid.UUID `json:"class_id" validate:"omitempty"`
	GradeID  *uuid.UUID `json:"grade_id" validate:"omitempty"`
	ParentID *uuid.UUID `json:"parent_id" validate:"omitempty"`
	RollNo   *int       `json:"roll_no" validate:"omitempty,gt=0"`
}

func (r *UpdateStudentRequest) ApplyToModel(m *model.StudentModel) {
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
	if r.ClassID != nil {
		m.ClassID = *r.ClassID
	}
	if r.GradeID != nil {
		m.GradeID = *r.GradeID
	}
	if r.ParentID != nil {
		m.ParentID = *r.ParentID
	}
	if r.RollNo != nil {
		m.RollNo = *r.RollNo
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

// ListStudentsQuery merges caller filters into the scoped query.
// Values are raw strings; anything malformed is ignored, never an
// error. Filters only narrow; they are ANDed onto the role scope.
type ListStudentsQuery struct {
	Search  string
	ClassID string
	GradeID string
	Sort    string
	Page    int

	// Role picks the default ordering: teachers get the class register
	// order (roll_no), everyone else name ascending.
	Role string
}

func ListStudentsFromQueries(q map[string]string, role string) ListStudentsQuery {
	return ListStudentsQuery{
		Search:  q["search"],
		ClassID: q["classId"],
		GradeID: q["gradeId"],
		Sort:    q["sort"],
		Page:    helper.ParsePage(q["page"]),
		Role:    role,
	}
}

func (q ListStudentsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		p := helper.SearchPattern(s)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(username) LIKE ?", p, p, p)
	}
	if id, ok := helper.ParseUUID(q.ClassID); ok {
		tx = tx.Where("class_id = ?", id)
	}
	if id, ok := helper.ParseUUID(q.GradeID); ok {
		tx = tx.Where("grade_id = ?", id)
	}

	switch q.Sort {
	case "name_asc":
		tx = tx.Order("name ASC")
	case "name_desc":
		tx = tx.Order("name DESC")
	case "surname_asc":
		tx = tx.Order("surname ASC")
	case "roll_no_asc":
		tx = tx.Order("roll_no ASC")
	default:
		if q.Role == constants.RoleTeacher {
			tx = tx.Order("roll_no ASC")
		} else {
			tx = tx.Order("name ASC")
		}
	}
	return tx
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   string    `json:"address"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Sex       string    `json:"sex"`
	BirthDate time.Time `json:"birth_date"`
	ClassID   uuid.UUID `json:"class_id"`
	GradeID   uuid.UUID `json:"grade_id"`
	ParentID  uuid.UUID `json:"parent_id"`
	RollNo    int       `json:"roll_no"`
}

type StudentDetailResponse struct {
	StudentResponse
	// AttendancePercent is present days / recorded days, 0 when no
	// attendance has been recorded yet.
	AttendancePercent float64 `json:"attendance_percent"`
}

func NewStudentResponse(m *model.StudentModel) *StudentResponse {
	if m == nil {
		return nil
	}
	return &StudentResponse{
		ID:        m.ID,
		Username:  m.Username,
		Name:      m.Name,
		Surname:   m.Surname,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		ImageURL:  m.ImageURL,
		Sex:       m.Sex,
		BirthDate: m.BirthDate,
		ClassID:   m.ClassID,
		GradeID:   m.GradeID,
		ParentID:  m.ParentID,
		RollNo:    m.RollNo,
	}
}

func NewStudentResponses(rows []model.StudentModel) []*StudentResponse {
	resp := make([]*StudentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewStudentResponse(&rows[i]))
	}
	return resp
}
