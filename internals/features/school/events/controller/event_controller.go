package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/events/dto"
	model "schoolhub_backend/internals/features/school/events/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

var validateEvent = validator.New()

// GET /events
func (h *EventController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListEventsFromQueries(c.Queries())
	tx := h.DB.Model(&model.EventModel{}).
		Scopes(scope.Events(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.EventModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonList(c, dto.NewEventResponses(rows), q.Page, total)
}

// GET /events/:id
func (h *EventController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.EventModel
	err = h.DB.Scopes(scope.Events(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.NewEventResponse(&m))
}

// POST /events (admin)
func (h *EventController) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateEvent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.EndTime.After(req.StartTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time.")
	}
	if req.ClassID != nil {
		var n int64
		if err := h.DB.Table("classes").Where("id = ?", *req.ClassID).Count(&n).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonCreated(c, "Event created", dto.NewEventResponse(m))
}

// PUT /events/:id (admin)
func (h *EventController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateEvent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.EventModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonDBError(c, err)
	}

	if req.ClassID != nil {
		var n int64
		if err := h.DB.Table("classes").Where("id = ?", *req.ClassID).Count(&n).Error; err != nil {
			return helper.JsonDBError(c, err)
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
	}

	req.ApplyToModel(&m)
	if !m.EndTime.After(m.StartTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time.")
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated", dto.NewEventResponse(&m))
}

// DELETE /events/:id (admin)
func (h *EventController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	res := h.DB.Delete(&model.EventModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"id": id})
}
