package controller

import (
	"time"

	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/attendance/dto"
	model "schoolhub_backend/internals/features/school/attendance/model"
	service "schoolhub_backend/internals/features/school/attendance/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type AttendanceController struct {
	DB      *gorm.DB
	Service *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB, svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{DB: db, Service: svc}
}

var validateAttendance = validator.New()

// GET /attendance
func (h *AttendanceController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListAttendanceFromQueries(c.Queries())
	tx := h.DB.Model(&model.AttendanceModel{}).
		Scopes(scope.Attendance(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.AttendanceModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewAttendanceResponses(rows), q.Page, total)
}

// GET /attendance/export: scoped rows as an XLSX download.
func (h *AttendanceController) Export(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListAttendanceFromQueries(c.Queries())
	tx := h.DB.Model(&model.AttendanceModel{}).
		Scopes(scope.Attendance(h.DB, role, userID))
	tx = q.Apply(tx)

	f, err := h.Service.Export(c.Context(), tx)
	if err != nil {
		return helper.JsonDBError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFilename(time.Now())+`"`)
	return f.Write(c.Response().BodyWriter())
}

// POST /attendance (admin, teacher)
func (h *AttendanceController) Create(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(c.Context(), req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Attendance recorded", dto.NewAttendanceResponse(m))
}

// PUT /attendance/:id (admin, teacher)
func (h *AttendanceController) Update(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(c.Context(), id, req, role, userID)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance updated", dto.NewAttendanceResponse(m))
}

// DELETE /attendance/:id (admin, teacher)
func (h *AttendanceController) Delete(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(c.Context(), id, role, userID); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Attendance deleted", fiber.Map{"id": id})
}
