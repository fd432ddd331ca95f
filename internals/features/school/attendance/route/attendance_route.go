package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/attendance/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, ctrl *controller.AttendanceController) {
	g := api.Group("/attendance")

	g.Get("/", ctrl.List)

	staffOnly := authMw.OnlyRoles(constants.RoleErrorStaff("attendance"), constants.StaffRoles...)
	g.Get("/export", staffOnly, ctrl.Export)
	g.Post("/", staffOnly, ctrl.Create)
	g.Put("/:id", staffOnly, ctrl.Update)
	g.Delete("/:id", staffOnly, ctrl.Delete)
}
