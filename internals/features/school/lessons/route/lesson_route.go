package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/lessons/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func LessonRoutes(api fiber.Router, ctrl *controller.LessonController) {
	g := api.Group("/lessons")

	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("lessons"), constants.AdminOnly...)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
