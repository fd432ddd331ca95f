package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/announcements/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func AnnouncementRoutes(api fiber.Router, ctrl *controller.AnnouncementController) {
	g := api.Group("/announcements")

	g.Get("/", ctrl.List)
	g.Get("/unseen-count", ctrl.UnseenCount)
	g.Get("/:id", ctrl.GetByID)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("announcements"), constants.AdminOnly...)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
