package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/fees/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func FeeRoutes(api fiber.Router, fees *controller.FeeController, feeTypes *controller.FeeTypeController) {
	t := api.Group("/fee-types")
	t.Get("/", feeTypes.List)

	typeAdmin := authMw.OnlyRoles(constants.RoleErrorAdmin("fee types"), constants.AdminOnly...)
	t.Post("/", typeAdmin, feeTypes.Create)
	t.Put("/:id", typeAdmin, feeTypes.Update)
	t.Delete("/:id", typeAdmin, feeTypes.Delete)

	g := api.Group("/fees")
	g.Get("/", fees.List)
	g.Get("/:id", fees.GetByID)
	g.Post("/:id/checkout", fees.Checkout)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("fees"), constants.AdminOnly...)
	g.Post("/", adminOnly, fees.Create)
	g.Put("/:id", adminOnly, fees.Update)
	g.Delete("/:id", adminOnly, fees.Delete)
}
