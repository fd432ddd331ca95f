package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
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

type ExamController struct {
	DB      *gorm.DB
	Service *service.AssessmentService
}

func NewExamController(db *gorm.DB, svc *service.AssessmentService) *ExamController {
	return &ExamController{DB: db, Service: svc}
}

var validateAssessment = validator.New()

// GET /exams
func (h *ExamController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListAssessmentsFromQueries(c.Queries())
	tx := h.DB.Model(&model.ExamModel{}).
		Scopes(scope.Exams(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.ExamModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewExamResponses(rows), q.Page, total)
}

// GET /exams/:id
func (h *ExamController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.ExamModel
	err = h.DB.Scopes(scope.Exams(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewExamResponse(&m))
}

// POST /exams (admin, teacher)
func (h *ExamController) Create(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.EndTime.After(req.StartTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time.")
	}
	if err := h.Service.EnsureLessonWritable(c.Context(), req.LessonID, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Exam created", dto.NewExamResponse(m))
}

// PUT /exams/:id (admin, teacher)
func (h *ExamController) Update(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.ExamModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
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
	if !m.EndTime.After(m.StartTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time.")
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Exam updated", dto.NewExamResponse(&m))
}

// DELETE /exams/:id (admin, teacher)
func (h *ExamController) Delete(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.ExamModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonDBError(c, err)
	}
	if err := h.Service.EnsureLessonWritable(c.Context(), m.LessonID, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}

	var results int64
	if err := h.DB.Table("results").Where("exam_id = ?", id).Count(&results).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if results > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Exam already has results recorded.")
	}

	if err := h.DB.Delete(&model.ExamModel{}, "id = ?", id).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "Exam deleted", fiber.Map{"id": id})
}
