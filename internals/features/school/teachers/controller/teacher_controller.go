package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/teachers/dto"
	model "schoolhub_backend/internals/features/school/teachers/model"
	service "schoolhub_backend/internals/features/school/teachers/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/images"
	"schoolhub_backend/internals/scope"
)

type TeacherController struct {
	DB      *gorm.DB
	Service *service.TeacherService
}

func NewTeacherController(db *gorm.DB, svc *service.TeacherService) *TeacherController {
	return &TeacherController{DB: db, Service: svc}
}

var validateTeacher = validator.New()

// GET /teachers
func (h *TeacherController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListTeachersFromQueries(c.Queries())
	tx := h.DB.Model(&model.TeacherModel{}).
		Scopes(scope.Teachers(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.TeacherModel
	if err := tx.Preload("Subjects").Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	return helper.JsonList(c, dto.NewTeacherResponses(rows), q.Page, total)
}

// GET /teachers/:id
func (h *TeacherController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.TeacherModel
	err = h.DB.Scopes(scope.Teachers(h.DB, role, userID)).
		Preload("Subjects").
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewTeacherResponse(&m))
}

// POST /teachers (admin)
func (h *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateTeacher.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(c.Context(), req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonCreated(c, "Teacher created", dto.NewTeacherResponse(m))
}

// PUT /teachers/:id (admin)
func (h *TeacherController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateTeacher.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonUpdated(c, "Teacher updated", dto.NewTeacherResponse(m))
}

// DELETE /teachers/:id (admin)
func (h *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		return helper.JsonActionError(c, err)
	}
	return helper.JsonDeleted(c, "Teacher deleted", fiber.Map{"id": id})
}

// PATCH /teachers/:id/photo (admin)
func (h *TeacherController) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.TeacherModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
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
	if err := h.DB.Omit("Subjects").Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Profile image updated", fiber.Map{"image_url": url})
}
