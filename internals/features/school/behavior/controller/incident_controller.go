package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/behavior/dto"
	model "schoolhub_backend/internals/features/school/behavior/model"
	service "schoolhub_backend/internals/features/school/behavior/service"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type IncidentController struct {
	DB      *gorm.DB
	Service *service.BehaviorService
}

func NewIncidentController(db *gorm.DB, svc *service.BehaviorService) *IncidentController {
	return &IncidentController{DB: db, Service: svc}
}

// GET /incidents
func (h *IncidentController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListIncidentsFromQueries(c.Queries())
	tx := h.DB.Model(&model.IncidentModel{}).
		Scopes(scope.Incidents(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.IncidentModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewIncidentResponses(rows), q.Page, total)
}

// GET /incidents/summary?studentId=...: signed point balance. The
// student must be visible through the caller's scope.
func (h *IncidentController) Summary(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Query("studentId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid studentId")
	}

	var student studentModel.StudentModel
	err = h.DB.Scopes(scope.Students(h.DB, role, userID)).
		First(&student, "id = ?", studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonDBError(c, err)
	}

	summary, err := h.Service.Summary(c.Context(), studentID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", summary)
}

// POST /incidents (admin, teacher)
func (h *IncidentController) Create(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateBehavior.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.CreateIncident(c.Context(), req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Incident recorded", dto.NewIncidentResponse(m))
}

// PUT /incidents/:id (admin, teacher)
func (h *IncidentController) Update(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateBehavior.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.UpdateIncident(c.Context(), id, req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Incident updated", dto.NewIncidentResponse(m))
}

// DELETE /incidents/:id (admin, teacher)
func (h *IncidentController) Delete(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.DeleteIncident(c.Context(), id, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Incident deleted", fiber.Map{"id": id})
}
