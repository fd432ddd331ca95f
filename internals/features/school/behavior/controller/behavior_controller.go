package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/behavior/dto"
	model "schoolhub_backend/internals/features/school/behavior/model"
	helper "schoolhub_backend/internals/helpers"
)

type BehaviorController struct {
	DB *gorm.DB
}

func NewBehaviorController(db *gorm.DB) *BehaviorController {
	return &BehaviorController{DB: db}
}

var validateBehavior = validator.New()

// GET /behaviors: the whole catalog, no pagination.
func (h *BehaviorController) List(c *fiber.Ctx) error {
	var rows []model.BehaviorModel
	if err := h.DB.Order("title ASC").Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewBehaviorResponses(rows))
}

// POST /behaviors (admin)
func (h *BehaviorController) Create(c *fiber.Ctx) error {
	var req dto.CreateBehaviorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateBehavior.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Behavior created", dto.NewBehaviorResponse(m))
}

// PUT /behaviors/:id (admin)
func (h *BehaviorController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateBehaviorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateBehavior.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.BehaviorModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Behavior not found")
		}
		return helper.JsonDBError(c, err)
	}

	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Behavior updated", dto.NewBehaviorResponse(&m))
}

// DELETE /behaviors/:id (admin)
func (h *BehaviorController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var inUse int64
	if err := h.DB.Table("incidents").Where("behavior_id = ?", id).Count(&inUse).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Behavior is still referenced by incidents.")
	}

	res := h.DB.Delete(&model.BehaviorModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Behavior not found")
	}
	return helper.JsonDeleted(c, "Behavior deleted", fiber.Map{"id": id})
}
