package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolhub_backend/internals/features/school/parents/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateParentRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=60"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     string  `json:"name" validate:"required,min=1,max=80"`
	Surname  string  `json:"surname" validate:"required,min=1,max=80"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone" validate:"required,max=40"`
	Address  string  `json:"address" validate:"required"`
}

func (r CreateParentRequest) ToModel(id uuid.UUID) *model.ParentModel {
	return &model.ParentModel{
		ID:       id,
		Username: strings.TrimSpace(r.Username),
		Name:     strings.TrimSpace(r.Name),
		Surname:  strings.TrimSpace(r.Surname),
		Email:    trimPtr(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
		Address:  strings.TrimSpace(r.Address),
	}
}

type UpdateParentRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=60"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=80"`
	Surname  *string `json:"surname" validate:"omitempty,min=1,max=80"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Address  *string `json:"address" validate:"omitempty"`
}

func (r *UpdateParentRequest) ApplyToModel(m *model.ParentModel) {
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
		m.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Address != nil {
		m.Address = strings.TrimSpace(*r.Address)
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

type ListParentsQuery struct {
	Search string
	Sort   string
	Page   int
}

func ListParentsFromQueries(q map[string]string) ListParentsQuery {
	return ListParentsQuery{
		Search: q["search"],
		Sort:   q["sort"],
		Page:   helper.ParsePage(q["page"]),
	}
}

func (q ListParentsQuery) Apply(tx *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(q.Search); s != "" {
		p := helper.SearchPattern(s)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(username) LIKE ?", p, p, p)
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

type ParentResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Email    *string   `json:"email,omitempty"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
}

func NewParentResponse(m *model.ParentModel) *ParentResponse {
	if m == nil {
		return nil
	}
	return &ParentResponse{
		ID:       m.ID,
		Username: m.Username,
		Name:     m.Name,
		Surname:  m.Surname,
		Email:    m.Email,
		Phone:    m.Phone,
		Address:  m.Address,
	}
}

func NewParentResponses(rows []model.ParentModel) []*ParentResponse {
	resp := make([]*ParentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewParentResponse(&rows[i]))
	}
	return resp
}
