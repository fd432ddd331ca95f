package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/lessons/dto"
	model "schoolhub_backend/internals/features/school/lessons/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type LessonController struct {
	DB *gorm.DB
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db}
}

var validateLesson = validator.New()

// GET /lessons
func (h *LessonController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListLessonsFromQueries(c.Queries())
	tx := h.DB.Model(&model.LessonModel{}).
		Scopes(scope.Lessons(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.LessonModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewLessonResponses(rows), q.Page, total)
}

// GET /lessons/:id
func (h *LessonController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.LessonModel
	err = h.DB.Scopes(scope.Lessons(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewLessonResponse(&m))
}

// POST /lessons (admin)
func (h *LessonController) Create(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLesson.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.EndTime.After(req.StartTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time.")
	}
	if err := h.checkReferences(req.SubjectID, req.ClassID, req.TeacherID); err != nil {
		return helper.JsonActionError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Lesson created", dto.NewLessonResponse(m))
}

// PUT /lessons/:id (admin)
func (h *LessonController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLesson.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.LessonModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.JsonDBError(c, err)
	}

	subjectID := m.SubjectID
	if req.SubjectID != nil {
		subjectID = *req.SubjectID
	}
	classID := m.ClassID
	if req.ClassID != nil {
		classID = *req.ClassID
	}
	teacherID := m.TeacherID
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	}
	if req.SubjectID != nil || req.ClassID != nil || req.TeacherID != nil {
		if err := h.checkReferences(subjectID, classID, teacherID); err != nil {
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
	return helper.JsonUpdated(c, "Lesson updated", dto.NewLessonResponse(&m))
}

// DELETE /lessons/:id (admin)
func (h *LessonController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var inUse int64
	if err := h.DB.Table("exams").Where("lesson_id = ?", id).Count(&inUse).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	if inUse == 0 {
		if err := h.DB.Table("assignments").Where("lesson_id = ?", id).Count(&inUse).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Lesson still has exams or assignments.")
	}

	res := h.DB.Delete(&model.LessonModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lesson not found")
	}
	return helper.JsonDeleted(c, "Lesson deleted", fiber.Map{"id": id})
}

func (h *LessonController) checkReferences(subjectID, classID, teacherID uuid.UUID) error {
	var n int64
	if err := h.DB.Table("subjects").Where("id = ?", subjectID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Subject not found.")
	}
	if err := h.DB.Table("classes").Where("id = ?", classID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Class not found.")
	}
	if err := h.DB.Table("teachers").Where("id = ?", teacherID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Teacher not found.")
	}
	return nil
}
