package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/assessments/dto"
	model "schoolhub_backend/internals/features/school/assessments/model"
	service "schoolhub_backend/internals/features/school/assessments/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type ResultController struct {
	DB      *gorm.DB
	Service *service.AssessmentService
}

func NewResultController(db *gorm.DB, svc *service.AssessmentService) *ResultController {
	return &ResultController{DB: db, Service: svc}
}

// GET /results
func (h *ResultController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListResultsFromQueries(c.Queries())
	tx := h.DB.Model(&model.ResultModel{}).
		Scopes(scope.Results(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.ResultModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewResultResponses(rows), q.Page, total)
}

// GET /results/:id
func (h *ResultController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.ResultModel
	err = h.DB.Scopes(scope.Results(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Result not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewResultResponse(&m))
}

// POST /results (admin, teacher)
func (h *ResultController) Create(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.CreateResult(c.Context(), req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Result created", dto.NewResultResponse(m))
}

// PUT /results/:id (admin, teacher)
func (h *ResultController) Update(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.UpdateResult(c.Context(), id, req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Result updated", dto.NewResultResponse(m))
}

// DELETE /results/:id (admin, teacher)
func (h *ResultController) Delete(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.DeleteResult(c.Context(), id, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Result deleted", fiber.Map{"id": id})
}
