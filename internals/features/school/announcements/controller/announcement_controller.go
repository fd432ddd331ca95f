package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/announcements/dto"
	model "schoolhub_backend/internals/features/school/announcements/model"
	service "schoolhub_backend/internals/features/school/announcements/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/scope"
)

type AnnouncementController struct {
	DB      *gorm.DB
	Service *service.AnnouncementService
}

func NewAnnouncementController(db *gorm.DB, svc *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{DB: db, Service: svc}
}

var validateAnnouncement = validator.New()

// GET /announcements: listing a page marks it as seen for the caller.
func (h *AnnouncementController) List(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := dto.ListAnnouncementsFromQueries(c.Queries())
	tx := h.DB.Model(&model.AnnouncementModel{}).
		Scopes(scope.Announcements(h.DB, role, userID))
	tx = q.Apply(tx)

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	var rows []model.AnnouncementModel
	if err := tx.Scopes(helper.Paginate(q.Page)).Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	views, err := h.Service.Views(c.Context(), userID, ids)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	// Viewing the page marks the rows not seen before; rows already
	// seen keep their original viewed_at across re-lists.
	unseen := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := views[id]; !ok {
			unseen = append(unseen, id)
		}
	}
	if len(unseen) > 0 {
		if err := h.Service.MarkSeen(c.Context(), userID, unseen); err != nil {
			return helper.JsonDBError(c, err)
		}
		views, err = h.Service.Views(c.Context(), userID, ids)
		if err != nil {
			return helper.JsonDBError(c, err)
		}
	}

	return helper.JsonList(c, dto.NewAnnouncementResponses(rows, views), q.Page, total)
}

// GET /announcements/unseen-count: does not mark anything as seen.
func (h *AnnouncementController) UnseenCount(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	tx := h.DB.Model(&model.AnnouncementModel{}).
		Scopes(scope.Announcements(h.DB, role, userID))
	n, err := h.Service.UnseenCount(c.Context(), tx, userID)
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{"unseen": n})
}

// GET /announcements/:id
func (h *AnnouncementController) GetByID(c *fiber.Ctx) error {
	userID, role, err := helperAuth.Caller(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var m model.AnnouncementModel
	err = h.DB.Scopes(scope.Announcements(h.DB, role, userID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonDBError(c, err)
	}

	if err := h.Service.MarkSeen(c.Context(), userID, []uuid.UUID{m.ID}); err != nil {
		return helper.JsonDBError(c, err)
	}
	views, err := h.Service.Views(c.Context(), userID, []uuid.UUID{m.ID})
	if err != nil {
		return helper.JsonDBError(c, err)
	}
	var viewedAt *time.Time
	if t, ok := views[m.ID]; ok {
		viewedAt = &t
	}
	return helper.JsonOK(c, "OK", dto.NewAnnouncementResponse(&m, viewedAt))
}

// POST /announcements (admin)
func (h *AnnouncementController) Create(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
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
	return helper.JsonCreated(c, "Announcement created", dto.NewAnnouncementResponse(m, nil))
}

// PUT /announcements/:id (admin)
func (h *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.AnnouncementModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
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
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonUpdated(c, "Announcement updated", dto.NewAnnouncementResponse(&m, nil))
}

// DELETE /announcements/:id (admin)
func (h *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	res := h.DB.Delete(&model.AnnouncementModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonDBError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
	}
	// View rows for the deleted announcement are swept as well.
	if err := h.DB.Delete(&model.AnnouncementViewModel{}, "announcement_id = ?", id).Error; err != nil {
		return helper.JsonDBError(c, err)
	}
	return helper.JsonDeleted(c, "Announcement deleted", fiber.Map{"id": id})
}
