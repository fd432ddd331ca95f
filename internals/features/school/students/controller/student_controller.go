package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/students/dto"
	model "schoolhub_backend/internals/features/school/students/model"
	service "schoolhub_backend/internals/features/school/students/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/images"
	"schoolhub_backend/internals/scope"
)

type StudentController struct {
	DB      *gorm.DB
	Service *service.StudentService
}

func NewStudentController(db *gorm.DB, svc *service.StudentService) *StudentController {
	return &StudentController{DB: db, Service: svc}
}

var validateStudent = validator.New()

// GET /students
func (h *StudentController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListStudentsFromQueries(c.Queries(), role)
	tx := h.DB.Model(&model.StudentModel{}).
		Scopes(scope.Students(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.StudentModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	return helper.JsonList(c, dto.NewStudentResponses(rows), q.Page, total)
}

// GET /students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.StudentModel
	err = h.DB.Scopes(scope.Students(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonDBError(c, err)
	}

	percent, err := h.Service.AttendancePercent(c.Context(), m.ID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}

	resp := dto.StudentDetailResponse{
		StudentResponse:   *dto.NewStudentResponse(&m),
		AttendancePercent: percent,
	}
	return helper.JsonOK(c, "OK", resp)
}

// POST /students (admin)
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(c.Context(), req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Student created", dto.NewStudentResponse(m))
}

// PUT /students/:id (admin)
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Student updated", dto.NewStudentResponse(m))
}

// DELETE /students/:id (admin)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": id})
}

// PATCH /students/:id/photo (admin)
func (h *StudentController) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.StudentModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonDBError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing image file")
	}
	data, contentType, err := images.NormalizeProfileImage(fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	url, err := h.Service.Identity.UpdateProfileImage(c.Context(), id, data, contentType)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Could not upload the profile image, please try again.")
	}

	m.ImageURL = &url
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Profile image updated", fiber.Map{"image_url": url})
}
