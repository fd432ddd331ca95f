package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/teachers/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func TeacherRoutes(api fiber.Router, ctrl *controller.TeacherController) {
	g := api.Group("/teachers")

	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("teachers"), constants.AdminOnly...)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
	g.Patch("/:id/photo", adminOnly, ctrl.UploadPhoto)
}
