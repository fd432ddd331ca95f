package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	controller "schoolhub_backend/internals/features/school/assessments/controller"
	authMw "schoolhub_backend/internals/middlewares/auth"
)

// AssessmentRoutes: staff (admin or teacher) may mutate; the service
// further restricts teachers to their own lessons.
func AssessmentRoutes(api fiber.Router, exams *controller.ExamController, assignments *controller.AssignmentController, results *controller.ResultController) {
	e := api.Group("/exams")
	e.Get("/", exams.List)
	e.Get("/:id", exams.GetByID)

	examStaff := authMw.OnlyRoles(constants.RoleErrorStaff("exams"), constants.StaffRoles...)
	e.Post("/", examStaff, exams.Create)
	e.Put("/:id", examStaff, exams.Update)
	e.Delete("/:id", examStaff, exams.Delete)

	a := api.Group("/assignments")
	a.Get("/", assignments.List)
	a.Get("/:id", assignments.GetByID)

	assignmentStaff := authMw.OnlyRoles(constants.RoleErrorStaff("assignments"), constants.StaffRoles...)
	a.Post("/", assignmentStaff, assignments.Create)
	a.Put("/:id", assignmentStaff, assignments.Update)
	a.Delete("/:id", assignmentStaff, assignments.Delete)

	r := api.Group("/results")
	r.Get("/", results.List)
	r.Get("/:id", results.GetByID)

	resultStaff := authMw.OnlyRoles(constants.RoleErrorStaff("results"), constants.StaffRoles...)
	r.Post("/", resultStaff, results.Create)
	r.Put("/:id", resultStaff, results.Update)
	r.Delete("/:id", resultStaff, results.Delete)
}
