package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/academics/dto"
	model "schoolhub_backend/internals/features/school/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

var validateAcademics = validator.New()

// GET /grades: small fixed catalog, no pagination.
func (h *GradeController) List(c *fiber.Ctx) error {
	var rows []model.GradeModel
	if err := h.DB.Order("level ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewGradeResponses(rows))
}

// POST /grades (admin)
func (h *GradeController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAcademics.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "This grade level already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Grade created", dto.NewGradeResponse(m))
}

// PUT /grades/:id (admin)
func (h *GradeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAcademics.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.GradeModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonDBError(c, err)
	}

	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "This grade level already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Grade updated", dto.NewGradeResponse(&m))
}

// DELETE /grades/:id (admin)
func (h *GradeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var inUse int64
	if err := h.DB.Table("classes").Where("grade_id = ?", id).Count(&inUse).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Grade is still referenced by classes.")
	}

	res := h.DB.Delete(&model.GradeModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
	}
	return helper.JsonDeleted(c, "Grade deleted", fiber.Map{"id": id})
}
