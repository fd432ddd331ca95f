package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/parents/dto"
	model "schoolhub_backend/internals/features/school/parents/model"
	service "schoolhub_backend/internals/features/school/parents/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type ParentController struct {
	DB      *gorm.DB
	Service *service.ParentService
}

func NewParentController(db *gorm.DB, svc *service.ParentService) *ParentController {
	return &ParentController{DB: db, Service: svc}
}

var validateParent = validator.New()

// GET /parents
func (h *ParentController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListParentsFromQueries(c.Queries())
	tx := h.DB.Model(&model.ParentModel{}).
		Scopes(scope.Parents(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.ParentModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	return helper.JsonList(c, dto.NewParentResponses(rows), q.Page, total)
}

// GET /parents/:id
func (h *ParentController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.ParentModel
	err = h.DB.Scopes(scope.Parents(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parent not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewParentResponse(&m))
}

// POST /parents (admin)
func (h *ParentController) Create(c *fiber.Ctx) error {
	var req dto.CreateParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateParent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(c.Context(), req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Parent created", dto.NewParentResponse(m))
}

// PUT /parents/:id (admin)
func (h *ParentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateParent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Parent updated", dto.NewParentResponse(m))
}

// DELETE /parents/:id (admin)
func (h *ParentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Parent deleted", fiber.Map{"id": id})
}
