package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/fees/dto"
	model "schoolhub_backend/internals/features/school/fees/model"
	helper "schoolhub_backend/internals/helpers"
)

type FeeTypeController struct {
	DB *gorm.DB
}

func NewFeeTypeController(db *gorm.DB) *FeeTypeController {
	return &FeeTypeController{DB: db}
}

// GET /fee-types: small catalog, no pagination.
func (h *FeeTypeController) List(c *fiber.Ctx) error {
	var rows []model.FeeTypeModel
	if err := h.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewFeeTypeResponses(rows))
}

// POST /fee-types (admin)
func (h *FeeTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A fee type with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Fee type created", dto.NewFeeTypeResponse(m))
}

// PUT /fee-types/:id (admin)
func (h *FeeTypeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.FeeTypeModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee type not found")
		}
		return helper.JsonDBError(c, err)
	}

	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A fee type with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Fee type updated", dto.NewFeeTypeResponse(&m))
}

// DELETE /fee-types/:id (admin)
func (h *FeeTypeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var inUse int64
	if err := h.DB.Table("fees").Where("fee_type_id = ?", id).Count(&inUse).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Fee type is still referenced by fees.")
	}

	res := h.DB.Delete(&model.FeeTypeModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Fee type not found")
	}
	return helper.JsonDeleted(c, "Fee type deleted", fiber.Map{"id": id})
}
