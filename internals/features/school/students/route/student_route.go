package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/students/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

// StudentRoutes: reads are open to every role (the scope predicate
// limits rows); mutations are admin only.
func StudentRoutes(api fiber.Router, ctrl *controller.StudentController) {
	g := api.Group("/students")

	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("students"), constants.AdminOnly...)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
	g.Patch("/:id/photo", adminOnly, ctrl.UploadPhoto)
}
