package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/academics/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

func AcademicsRoutes(api fiber.Router, grades *controller.GradeController, subjects *controller.SubjectController) {
	g := api.Group("/grades")
	g.Get("/", grades.List)

	gradeAdmin := authMw.OnlyRoles(constants.RoleErrorAdmin("grades"), constants.AdminOnly...)
	g.Post("/", gradeAdmin, grades.Create)
	g.Put("/:id", gradeAdmin, grades.Update)
	g.Delete("/:id", gradeAdmin, grades.Delete)

	s := api.Group("/subjects")
	s.Get("/", subjects.List)

	subjectAdmin := authMw.OnlyRoles(constants.RoleErrorAdmin("subjects"), constants.AdminOnly...)
	s.Post("/", subjectAdmin, subjects.Create)
	s.Put("/:id", subjectAdmin, subjects.Update)
	s.Delete("/:id", subjectAdmin, subjects.Delete)
}
