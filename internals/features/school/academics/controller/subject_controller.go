package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/academics/dto"
	model "schoolhub_backend/internals/features/school/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /subjects
func (h *SubjectController) List(c *fiber.Ctx) error {
	q := dto.ListSubjectsFromQueries(c.Queries())
	tx := q.Apply(h.DB.Model(&model.SubjectModel{}))

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.SubjectModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewSubjectResponses(rows), q.Page, total)
}

// POST /subjects (admin)
func (h *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAcademics.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A subject with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Subject created", dto.NewSubjectResponse(m))
}

// PUT /subjects/:id (admin)
func (h *SubjectController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAcademics.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.SubjectModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonDBError(c, err)
	}

	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A subject with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Subject updated", dto.NewSubjectResponse(&m))
}

// DELETE /subjects/:id (admin)
func (h *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var inUse int64
	if err := h.DB.Table("lessons").Where("subject_id = ?", id).Count(&inUse).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Subject is still referenced by lessons.")
	}

	res := h.DB.Delete(&model.SubjectModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
	}
	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"id": id})
}
