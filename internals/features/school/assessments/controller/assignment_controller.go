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

type AssignmentController struct {
	DB      *gorm.DB
	Service *service.AssessmentService
}

func NewAssignmentController(db *gorm.DB, svc *service.AssessmentService) *AssignmentController {
	return &AssignmentController{DB: db, Service: svc}
}

// GET /assignments
func (h *AssignmentController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListAssessmentsFromQueries(c.Queries())
	tx := h.DB.Model(&model.AssignmentModel{}).
		Scopes(scope.Assignments(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.AssignmentModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewAssignmentResponses(rows), q.Page, total)
}

// GET /assignments/:id
func (h *AssignmentController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.AssignmentModel
	err = h.DB.Scopes(scope.Assignments(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewAssignmentResponse(&m))
}

// POST /assignments (admin, teacher)
func (h *AssignmentController) Create(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.DueDate.After(req.StartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Due date must be after the start date.")
	}
	if err := h.Service.EnsureLessonWritable(c.Context(), req.LessonID, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Assignment created", dto.NewAssignmentResponse(m))
}

// PUT /assignments/:id (admin, teacher)
func (h *AssignmentController) Update(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.AssignmentModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonDBError(c, err)
	}

	if err := h.Service.EnsureLessonWritable(c.Context(), m.LessonID, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}
	if req.LessonID != nil && *req.LessonID != m.LessonID {
		if err := h.Service.EnsureLessonWritable(c.Context(), *req.LessonID, role, userID); err != nil {
			return helper.JsonActionError(c, err)
		}
	}

	req.ApplyToModel(&m)
	if !m.DueDate.After(m.StartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Due date must be after the start date.")
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Assignment updated", dto.NewAssignmentResponse(&m))
}

// DELETE /assignments/:id (admin, teacher)
func (h *AssignmentController) Delete(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.AssignmentModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonDBError(c, err)
	}
	if err := h.Service.EnsureLessonWritable(c.Context(), m.LessonID, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}

	var results int64
	if err := h.DB.Table("results").Where("assignment_id = ?", id).Count(&results).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if results > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Assignment already has results recorded.")
	}

	if err := h.DB.Delete(&model.AssignmentModel{}, "id = ?", id).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"id": id})
}
