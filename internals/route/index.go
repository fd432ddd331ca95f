package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "schoolhub_backend/internals/features/school/academics/controller"
	academicsRoute "schoolhub_backend/internals/features/school/academics/route"
	announcementController "schoolhub_backend/internals/features/school/announcements/controller"
	announcementRoute "schoolhub_backend/internals/features/school/announcements/route"
	announcementService "schoolhub_backend/internals/features/school/announcements/service"
	assessmentController "schoolhub_backend/internals/features/school/assessments/controller"
	assessmentRoute "schoolhub_backend/internals/features/school/assessments/route"
	assessmentService "schoolhub_backend/internals/features/school/assessments/service"
	attendanceController "schoolhub_backend/internals/features/school/attendance/controller"
	attendanceRoute "schoolhub_backend/internals/features/school/attendance/route"
	attendanceService "schoolhub_backend/internals/features/school/attendance/service"
	behaviorController "schoolhub_backend/internals/features/school/behavior/controller"
	behaviorRoute "schoolhub_backend/internals/features/school/behavior/route"
	behaviorService "schoolhub_backend/internals/features/school/behavior/service"
	classController "schoolhub_backend/internals/features/school/classes/controller"
	classRoute "schoolhub_backend/internals/features/school/classes/route"
	eventController "schoolhub_backend/internals/features/school/events/controller"
	eventRoute "schoolhub_backend/internals/features/school/events/route"
	feeController "schoolhub_backend/internals/features/school/fees/controller"
	feeRoute "schoolhub_backend/internals/features/school/fees/route"
	feeService "schoolhub_backend/internals/features/school/fees/service"
	lessonController "schoolhub_backend/internals/features/school/lessons/controller"
	lessonRoute "schoolhub_backend/internals/features/school/lessons/route"
	parentController "schoolhub_backend/internals/features/school/parents/controller"
	parentRoute "schoolhub_backend/internals/features/school/parents/route"
	parentService "schoolhub_backend/internals/features/school/parents/service"
	studentController "schoolhub_backend/internals/features/school/students/controller"
	studentRoute "schoolhub_backend/internals/features/school/students/route"
	studentService "schoolhub_backend/internals/features/school/students/service"
	teacherController "schoolhub_backend/internals/features/school/teachers/controller"
	teacherRoute "schoolhub_backend/internals/features/school/teachers/route"
	teacherService "schoolhub_backend/internals/features/school/teachers/service"

	"schoolhub_backend/internals/identity"
	"schoolhub_backend/internals/middlewares"
	authMw "schoolhub_backend/internals/middlewares/auth"

	"github.com/midtrans/midtrans-go/snap"
)

// SetupRoutes wires every feature under /api, behind the JWT
// middleware. Mutation endpoints additionally pass the mutation rate
// limiter.
func SetupRoutes(app *fiber.App, db *gorm.DB, idp identity.Service, snapClient *snap.Client) {
	api := app.Group("/api", authMw.AuthMiddleware(), middlewares.MutationRateLimiter())

	students := studentController.NewStudentController(db, studentService.NewStudentService(db, idp))
	studentRoute.StudentRoutes(api, students)

	teachers := teacherController.NewTeacherController(db, teacherService.NewTeacherService(db, idp))
	teacherRoute.TeacherRoutes(api, teachers)

	parents := parentController.NewParentController(db, parentService.NewParentService(db, idp))
	parentRoute.ParentRoutes(api, parents)

	academicsRoute.AcademicsRoutes(api,
		academicsController.NewGradeController(db),
		academicsController.NewSubjectController(db))

	classRoute.ClassRoutes(api, classController.NewClassController(db))
	lessonRoute.LessonRoutes(api, lessonController.NewLessonController(db))

	assessments := assessmentService.NewAssessmentService(db)
	assessmentRoute.AssessmentRoutes(api,
		assessmentController.NewExamController(db, assessments),
		assessmentController.NewAssignmentController(db, assessments),
		assessmentController.NewResultController(db, assessments))

	attendanceRoute.AttendanceRoutes(api,
		attendanceController.NewAttendanceController(db, attendanceService.NewAttendanceService(db)))

	feeRoute.FeeRoutes(api,
		feeController.NewFeeController(db, feeService.NewFeeService(db, snapClient)),
		feeController.NewFeeTypeController(db))

	behaviors := behaviorService.NewBehaviorService(db)
	behaviorRoute.BehaviorRoutes(api,
		behaviorController.NewBehaviorController(db),
		behaviorController.NewIncidentController(db, behaviors))

	announcementRoute.AnnouncementRoutes(api,
		announcementController.NewAnnouncementController(db, announcementService.NewAnnouncementService(db)))

	eventRoute.EventRoutes(api, eventController.NewEventController(db))
}
