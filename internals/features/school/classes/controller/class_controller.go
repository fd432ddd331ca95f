package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/classes/dto"
	model "schoolhub_backend/internals/features/school/classes/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validateClass = validator.New()

// GET /classes
func (h *ClassController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListClassesFromQueries(c.Queries())
	tx := h.DB.Model(&model.ClassModel{}).
		Scopes(scope.Classes(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.ClassModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	resp := make([]*dto.ClassResponse, 0, len(rows))
	for i := range rows {
		enrolled, err := h.enrolledCount(rows[i].ID)
		if err != nil {
			return helper.JsonDBError(c, err)
		}
		resp = append(resp, dto.NewClassResponse(&rows[i], enrolled))
	}
	return helper.JsonList(c, resp, q.Page, total)
}

// GET /classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.ClassModel
	err = h.DB.Scopes(scope.Classes(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonDBError(c, err)
	}

	enrolled, err := h.enrolledCount(m.ID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewClassResponse(&m, enrolled))
}

// POST /classes (admin)
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := h.checkReferences(req.GradeID, req.SupervisorID); err != nil {
		return helper.JsonActionError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A class with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Class created", dto.NewClassResponse(m, 0))
}

// PUT /classes/:id (admin)
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.ClassModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonDBError(c, err)
	}

	gradeID := m.GradeID
	if req.GradeID != nil {
		gradeID = *req.GradeID
	}
	supervisorID := m.SupervisorID
	if req.SupervisorID != nil {
		supervisorID = req.SupervisorID
	}
	if req.GradeID != nil || req.SupervisorID != nil {
		if err := h.checkReferences(gradeID, supervisorID); err != nil {
			return helper.JsonActionError(c, err)
		}
	}

	enrolled, err := h.enrolledCount(m.ID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	if req.Capacity != nil && int64(*req.Capacity) < enrolled {
		return helper.JsonError(c, fiber.StatusConflict, "Capacity cannot be lower than the current enrollment.")
	}

	req.ApplyToModel(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		if helper.IsUniqueErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A class with this name already exists.")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Class updated", dto.NewClassResponse(&m, enrolled))
}

// DELETE /classes/:id (admin)
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	enrolled, err := h.enrolledCount(id)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	if enrolled > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Class still has enrolled students.")
	}

	res := h.DB.Delete(&model.ClassModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"id": id})
}

func (h *ClassController) enrolledCount(classID uuid.UUID) (int64, error) {
	var n int64
	err := h.DB.Table("students").Where("class_id = ?", classID).Count(&n).Error
	return n, err
}

func (h *ClassController) checkReferences(gradeID uuid.UUID, supervisorID *uuid.UUID) error {
	var n int64
	if err := h.DB.Table("grades").Where("id = ?", gradeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Grade not found.")
	}
	if supervisorID != nil {
		if err := h.DB.Table("teachers").Where("id = ?", *supervisorID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Supervisor teacher not found.")
		}
	}
	return nil
}
