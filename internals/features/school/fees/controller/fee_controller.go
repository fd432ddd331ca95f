package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/fees/dto"
	model "schoolhub_backend/internals/features/school/fees/model"
	service "schoolhub_backend/internals/features/school/fees/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type FeeController struct {
	DB      *gorm.DB
	Service *service.FeeService
}

func NewFeeController(db *gorm.DB, svc *service.FeeService) *FeeController {
	return &FeeController{DB: db, Service: svc}
}

var validateFee = validator.New()

// GET /fees
func (h *FeeController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListFeesFromQueries(c.Queries())
	tx := h.DB.Model(&model.FeeModel{}).
		Scopes(scope.Fees(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.FeeModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewFeeResponses(rows), q.Page, total)
}

// GET /fees/:id
func (h *FeeController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.FeeModel
	err = h.DB.Scopes(scope.Fees(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewFeeResponse(&m))
}

// POST /fees (admin)
func (h *FeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(c.Context(), req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Fee created", dto.NewFeeResponse(m))
}

// PUT /fees/:id (admin)
func (h *FeeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFee.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Fee updated", dto.NewFeeResponse(m))
}

// DELETE /fees/:id (admin)
func (h *FeeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Fee deleted", fiber.Map{"id": id})
}

// POST /fees/:id/checkout: visible through the caller's scope, so a
// parent can only pay their own children's fees.
func (h *FeeController) Checkout(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.FeeModel
	err = h.DB.Scopes(scope.Fees(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee not found")
		}
		return helper.JsonDBError(c, err)
	}

	redirectURL, err := h.Service.Checkout(c.Context(), m.ID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonOK(c, "Checkout created", fiber.Map{"redirect_url": redirectURL})
}
