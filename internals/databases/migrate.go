package databases

import (
	"gorm.io/gorm"

	academicsModel "schoolhub_backend/internals/features/school/academics/model"
	announcementModel "schoolhub_backend/internals/features/school/announcements/model"
	assessmentModel "schoolhub_backend/internals/features/school/assessments/model"
	attendanceModel "schoolhub_backend/internals/features/school/attendance/model"
	behaviorModel "schoolhub_backend/internals/features/school/behavior/model"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	eventModel "schoolhub_backend/internals/features/school/events/model"
	feeModel "schoolhub_backend/internals/features/school/fees/model"
	lessonModel "schoolhub_backend/internals/features/school/lessons/model"
	parentModel "schoolhub_backend/internals/features/school/parents/model"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	teacherModel "schoolhub_backend/internals/features/school/teachers/model"
)

// AutoMigrate creates or updates every table. Parents and grades come
// first so the dependent tables can reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&academicsModel.GradeModel{},
		&academicsModel.SubjectModel{},
		&parentModel.ParentModel{},
		&teacherModel.TeacherModel{},
		&classModel.ClassModel{},
		&studentModel.StudentModel{},
		&lessonModel.LessonModel{},
		&assessmentModel.ExamModel{},
		&assessmentModel.AssignmentModel{},
		&assessmentModel.ResultModel{},
		&attendanceModel.AttendanceModel{},
		&feeModel.FeeTypeModel{},
		&feeModel.FeeModel{},
		&behaviorModel.BehaviorModel{},
		&behaviorModel.IncidentModel{},
		&announcementModel.AnnouncementModel{},
		&announcementModel.AnnouncementViewModel{},
		&eventModel.EventModel{},
	)
}
