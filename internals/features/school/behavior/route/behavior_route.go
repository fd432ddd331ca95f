package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/behavior/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func BehaviorRoutes(api fiber.Router, behaviors *controller.BehaviorController, incidents *controller.IncidentController) {
	b := api.Group("/behaviors")
	b.Get("/", behaviors.List)

	behaviorAdmin := authMw.OnlyRoles(constants.RoleErrorAdmin("behaviors"), constants.AdminOnly...)
	b.Post("/", behaviorAdmin, behaviors.Create)
	b.Put("/:id", behaviorAdmin, behaviors.Update)
	b.Delete("/:id", behaviorAdmin, behaviors.Delete)

	i := api.Group("/incidents")
	i.Get("/", incidents.List)
	i.Get("/summary", incidents.Summary)

	incidentStaff := authMw.OnlyRoles(constants.RoleErrorStaff("incidents"), constants.StaffRoles...)
	i.Post("/", incidentStaff, incidents.Create)
	i.Put("/:id", incidentStaff, incidents.Update)
	i.Delete("/:id", incidentStaff, incidents.Delete)
}
