package scope_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/databases"
	announcementModel "schoolhub_backend/internals/features/school/announcements/model"
	assessmentModel "schoolhub_backend/internals/features/school/assessments/model"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	feeModel "schoolhub_backend/internals/features/school/fees/model"
	lessonModel "schoolhub_backend/internals/features/school/lessons/model"
	parentModel "schoolhub_backend/internals/features/school/parents/model"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	teacherModel "schoolhub_backend/internals/features/school/teachers/model"
	"schoolhub_backend/internals/scope"
)

type fixture struct {
	db *gorm.DB

	supervisor uuid.UUID // supervises class A, teaches nothing
	lecturer   uuid.UUID // teaches lessons in A and B, supervises nothing
	parent     uuid.UUID // parent of s1 and s2
	s1, s2, s3 uuid.UUID // s1, s2 in class A; s3 in class B
	s4         uuid.UUID // class C, untaught and unsupervised

	classA, classB, classC uuid.UUID
	lessonA, lessonB       uuid.UUID
	examA, examB           uuid.UUID
	resultA1, resultA4     uuid.UUID

	globalAnn, classAAnn, classBAnn uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	f := &fixture{db: db}
	birth := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	gradeID := uuid.New()
	require.NoError(t, db.Exec("INSERT INTO grades (id, level, created_at, updated_at) VALUES (?, 5, ?, ?)",
		gradeID, time.Now(), time.Now()).Error)

	f.supervisor = uuid.New()
	f.lecturer = uuid.New()
	for _, id := range []uuid.UUID{f.supervisor, f.lecturer} {
		require.NoError(t, db.Create(&teacherModel.TeacherModel{
			ID: id, Username: "t-" + id.String()[:8], Name: "T", Surname: "T",
			Address: "addr", Sex: "female", BirthDate: birth,
		}).Error)
	}

	f.parent = uuid.New()
	otherParent := uuid.New()
	for _, id := range []uuid.UUID{f.parent, otherParent} {
		require.NoError(t, db.Create(&parentModel.ParentModel{
			ID: id, Username: "p-" + id.String()[:8], Name: "P", Surname: "P",
			Phone: "555", Address: "addr",
		}).Error)
	}

	f.classA = uuid.New()
	f.classB = uuid.New()
	f.classC = uuid.New()
	require.NoError(t, db.Create(&classModel.ClassModel{
		ID: f.classA, Name: "5A", Capacity: 30, GradeID: gradeID, SupervisorID: &f.supervisor,
	}).Error)
	require.NoError(t, db.Create(&classModel.ClassModel{
		ID: f.classB, Name: "5B", Capacity: 30, GradeID: gradeID,
	}).Error)
	require.NoError(t, db.Create(&classModel.ClassModel{
		ID: f.classC, Name: "5C", Capacity: 30, GradeID: gradeID,
	}).Error)

	f.s1, f.s2, f.s3, f.s4 = uuid.New(), uuid.New(), uuid.New(), uuid.New()
	students := []studentModel.StudentModel{
		{ID: f.s1, ClassID: f.classA, ParentID: f.parent, RollNo: 1},
		{ID: f.s2, ClassID: f.classA, ParentID: f.parent, RollNo: 2},
		{ID: f.s3, ClassID: f.classB, ParentID: otherParent, RollNo: 1},
		{ID: f.s4, ClassID: f.classC, ParentID: otherParent, RollNo: 1},
	}
	for i := range students {
		students[i].Username = "s-" + students[i].ID.String()[:8]
		students[i].Name = "S"
		students[i].Surname = "S"
		students[i].Address = "addr"
		students[i].Sex = "male"
		students[i].BirthDate = birth
		students[i].GradeID = gradeID
		require.NoError(t, db.Create(&students[i]).Error)
	}

	subjectID := uuid.New()
	require.NoError(t, db.Exec("INSERT INTO subjects (id, name, created_at, updated_at) VALUES (?, 'Math', ?, ?)",
		subjectID, time.Now(), time.Now()).Error)

	f.lessonA, f.lessonB = uuid.New(), uuid.New()
	now := time.Now()
	require.NoError(t, db.Create(&lessonModel.LessonModel{
		ID: f.lessonA, Name: "Math A", Day: "monday", StartTime: now, EndTime: now.Add(time.Hour),
		SubjectID: subjectID, ClassID: f.classA, TeacherID: f.lecturer,
	}).Error)
	require.NoError(t, db.Create(&lessonModel.LessonModel{
		ID: f.lessonB, Name: "Math B", Day: "tuesday", StartTime: now, EndTime: now.Add(time.Hour),
		SubjectID: subjectID, ClassID: f.classB, TeacherID: f.lecturer,
	}).Error)

	f.examA, f.examB = uuid.New(), uuid.New()
	require.NoError(t, db.Create(&assessmentModel.ExamModel{
		ID: f.examA, Title: "Exam A", StartTime: now, EndTime: now.Add(time.Hour), LessonID: f.lessonA,
	}).Error)
	require.NoError(t, db.Create(&assessmentModel.ExamModel{
		ID: f.examB, Title: "Exam B", StartTime: now, EndTime: now.Add(time.Hour), LessonID: f.lessonB,
	}).Error)

	f.resultA1, f.resultA4 = uuid.New(), uuid.New()
	require.NoError(t, db.Create(&assessmentModel.ResultModel{
		ID: f.resultA1, Score: 90, ExamID: &f.examA, StudentID: f.s1,
	}).Error)
	require.NoError(t, db.Create(&assessmentModel.ResultModel{
		ID: f.resultA4, Score: 70, ExamID: &f.examA, StudentID: f.s4,
	}).Error)

	f.globalAnn, f.classAAnn, f.classBAnn = uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, db.Create(&announcementModel.AnnouncementModel{
		ID: f.globalAnn, Title: "Global", Description: "d", Date: now,
	}).Error)
	require.NoError(t, db.Create(&announcementModel.AnnouncementModel{
		ID: f.classAAnn, Title: "For 5A", Description: "d", Date: now, ClassID: &f.classA,
	}).Error)
	require.NoError(t, db.Create(&announcementModel.AnnouncementModel{
		ID: f.classBAnn, Title: "For 5B", Description: "d", Date: now, ClassID: &f.classB,
	}).Error)

	return f
}

func idsOf(t *testing.T, tx *gorm.DB) []uuid.UUID {
	t.Helper()
	var ids []uuid.UUID
	require.NoError(t, tx.Pluck("id", &ids).Error)
	return ids
}

func TestStudentsScope(t *testing.T) {
	f := newFixture(t)

	t.Run("supervisor sees only supervised class", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, constants.RoleTeacher, f.supervisor)))
		require.ElementsMatch(t, []uuid.UUID{f.s1, f.s2}, ids)
	})

	t.Run("teacher without supervised class sees nothing", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, constants.RoleTeacher, f.lecturer)))
		require.Empty(t, ids)
	})

	t.Run("student sees only self", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, constants.RoleStudent, f.s1)))
		require.Equal(t, []uuid.UUID{f.s1}, ids)
	})

	t.Run("parent sees own children", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, constants.RoleParent, f.parent)))
		require.ElementsMatch(t, []uuid.UUID{f.s1, f.s2}, ids)
	})

	t.Run("unknown role sees nothing", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, "janitor", f.supervisor)))
		require.Empty(t, ids)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&studentModel.StudentModel{}).
			Scopes(scope.Students(f.db, constants.RoleAdmin, uuid.New())))
		require.Len(t, ids, 4)
	})
}

func TestLessonsAndExamsScope(t *testing.T) {
	f := newFixture(t)

	t.Run("lecturer sees own lessons", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&lessonModel.LessonModel{}).
			Scopes(scope.Lessons(f.db, constants.RoleTeacher, f.lecturer)))
		require.ElementsMatch(t, []uuid.UUID{f.lessonA, f.lessonB}, ids)
	})

	t.Run("student sees lessons of own class", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&lessonModel.LessonModel{}).
			Scopes(scope.Lessons(f.db, constants.RoleStudent, f.s1)))
		require.Equal(t, []uuid.UUID{f.lessonA}, ids)
	})

	t.Run("exam visibility follows the lesson", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&assessmentModel.ExamModel{}).
			Scopes(scope.Exams(f.db, constants.RoleStudent, f.s1)))
		require.Equal(t, []uuid.UUID{f.examA}, ids)
	})

	t.Run("student row missing degrades to nothing", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&lessonModel.LessonModel{}).
			Scopes(scope.Lessons(f.db, constants.RoleStudent, uuid.New())))
		require.Empty(t, ids)
	})
}

func TestResultsScopeTeacherDoubleFilter(t *testing.T) {
	f := newFixture(t)

	// resultA4 hangs off the lecturer's exam, but the student sits in a
	// class the lecturer does not teach. It must stay hidden.
	ids := idsOf(t, f.db.Model(&assessmentModel.ResultModel{}).
		Scopes(scope.Results(f.db, constants.RoleTeacher, f.lecturer)))
	require.Equal(t, []uuid.UUID{f.resultA1}, ids)

	ids = idsOf(t, f.db.Model(&assessmentModel.ResultModel{}).
		Scopes(scope.Results(f.db, constants.RoleStudent, f.s4)))
	require.Equal(t, []uuid.UUID{f.resultA4}, ids)
}

func TestAnnouncementsScope(t *testing.T) {
	f := newFixture(t)

	t.Run("student sees global plus own class", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&announcementModel.AnnouncementModel{}).
			Scopes(scope.Announcements(f.db, constants.RoleStudent, f.s1)))
		require.ElementsMatch(t, []uuid.UUID{f.globalAnn, f.classAAnn}, ids)
	})

	t.Run("parent follows the children's classes", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&announcementModel.AnnouncementModel{}).
			Scopes(scope.Announcements(f.db, constants.RoleParent, f.parent)))
		require.ElementsMatch(t, []uuid.UUID{f.globalAnn, f.classAAnn}, ids)
	})

	t.Run("caller without a role row sees nothing, not everything", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&announcementModel.AnnouncementModel{}).
			Scopes(scope.Announcements(f.db, constants.RoleParent, uuid.New())))
		require.Empty(t, ids)
	})
}

func TestFeesScope(t *testing.T) {
	f := newFixture(t)

	feeTypeID := uuid.New()
	require.NoError(t, f.db.Exec(
		"INSERT INTO fee_types (id, name, created_at, updated_at) VALUES (?, 'Tuition', ?, ?)",
		feeTypeID, time.Now(), time.Now()).Error)

	fee1, fee3 := uuid.New(), uuid.New()
	for _, fee := range []feeModel.FeeModel{
		{ID: fee1, StudentID: f.s1},
		{ID: fee3, StudentID: f.s3},
	} {
		fee.FeeTypeID = feeTypeID
		fee.Amount = 100
		fee.Status = feeModel.FeeStatusPending
		fee.AcademicYear = "2025/2026"
		fee.Semester = "1"
		require.NoError(t, f.db.Create(&fee).Error)
	}

	t.Run("teachers see all fees", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&feeModel.FeeModel{}).
			Scopes(scope.Fees(f.db, constants.RoleTeacher, f.lecturer)))
		require.ElementsMatch(t, []uuid.UUID{fee1, fee3}, ids)
	})

	t.Run("parent sees only the children's fees", func(t *testing.T) {
		ids := idsOf(t, f.db.Model(&feeModel.FeeModel{}).
			Scopes(scope.Fees(f.db, constants.RoleParent, f.parent)))
		require.Equal(t, []uuid.UUID{fee1}, ids)
	})
}
