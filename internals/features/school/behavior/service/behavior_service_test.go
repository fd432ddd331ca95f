package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/databases"
	dto "schoolhub_backend/internals/features/school/behavior/dto"
	model "schoolhub_backend/internals/features/school/behavior/model"
	service "schoolhub_backend/internals/features/school/behavior/service"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	lessonModel "schoolhub_backend/internals/features/school/lessons/model"
	studentModel "schoolhub_backend/internals/features/school/students/model"
)

type behaviorEnv struct {
	db  *gorm.DB
	svc *service.BehaviorService

	teacherID  uuid.UUID
	lecturerID uuid.UUID
	studentID  uuid.UUID
	helpingID  uuid.UUID
	fightingID uuid.UUID
}

func newBehaviorEnv(t *testing.T) *behaviorEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	env := &behaviorEnv{
		db:         db,
		svc:        service.NewBehaviorService(db),
		teacherID:  uuid.New(),
		lecturerID: uuid.New(),
	}

	gradeID := uuid.New()
	now := time.Now()
	require.NoError(t, db.Exec("INSERT INTO grades (id, level, created_at, updated_at) VALUES (?, 7, ?, ?)",
		gradeID, now, now).Error)

	class := classModel.ClassModel{Name: "7A", Capacity: 30, GradeID: gradeID, SupervisorID: &env.teacherID}
	require.NoError(t, db.Create(&class).Error)

	student := studentModel.StudentModel{
		ID: uuid.New(), Username: "kid.one", Name: "Kid", Surname: "One",
		Address: "a", Sex: "male", BirthDate: now,
		ClassID: class.ID, GradeID: gradeID, ParentID: uuid.New(), RollNo: 1,
	}
	require.NoError(t, db.Create(&student).Error)
	env.studentID = student.ID

	// The lecturer teaches a lesson in the class but does not
	// supervise it.
	require.NoError(t, db.Create(&lessonModel.LessonModel{
		Name:      "Math",
		Day:       "monday",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		SubjectID: uuid.New(),
		ClassID:   class.ID,
		TeacherID: env.lecturerID,
	}).Error)

	helping := model.BehaviorModel{Title: "Helping classmates", Points: 5, IsNegative: false}
	fighting := model.BehaviorModel{Title: "Fighting", Points: 3, IsNegative: true}
	require.NoError(t, db.Create(&helping).Error)
	require.NoError(t, db.Create(&fighting).Error)
	env.helpingID = helping.ID
	env.fightingID = fighting.ID

	return env
}

func (e *behaviorEnv) record(t *testing.T, behaviorID uuid.UUID, date string) {
	t.Helper()
	_, err := e.svc.CreateIncident(context.Background(), dto.CreateIncidentRequest{
		StudentID:  e.studentID,
		BehaviorID: behaviorID,
		Date:       date,
	}, constants.RoleAdmin, uuid.New())
	require.NoError(t, err)
}

func TestBehaviorSummarySignedSum(t *testing.T) {
	env := newBehaviorEnv(t)
	ctx := context.Background()

	sum, err := env.svc.Summary(ctx, env.studentID)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalPoints)
	assert.Zero(t, sum.IncidentCount)

	env.record(t, env.helpingID, "2026-09-01")
	env.record(t, env.helpingID, "2026-09-02")
	env.record(t, env.fightingID, "2026-09-03")

	sum, err = env.svc.Summary(ctx, env.studentID)
	require.NoError(t, err)
	assert.Equal(t, 7, sum.TotalPoints)
	assert.EqualValues(t, 2, sum.PositiveCount)
	assert.EqualValues(t, 1, sum.NegativeCount)
	assert.EqualValues(t, 3, sum.IncidentCount)
}

func TestIncidentRecordsWhoGaveIt(t *testing.T) {
	env := newBehaviorEnv(t)

	m, err := env.svc.CreateIncident(context.Background(), dto.CreateIncidentRequest{
		StudentID:  env.studentID,
		BehaviorID: env.helpingID,
		Date:       "2026-09-01",
	}, constants.RoleTeacher, env.teacherID)
	require.NoError(t, err)
	assert.Equal(t, env.teacherID, m.GivenByID)
}

func TestIncidentTeacherLimitedToOwnStudents(t *testing.T) {
	env := newBehaviorEnv(t)

	_, err := env.svc.CreateIncident(context.Background(), dto.CreateIncidentRequest{
		StudentID:  env.studentID,
		BehaviorID: env.helpingID,
		Date:       "2026-09-01",
	}, constants.RoleTeacher, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	// Teaching a lesson in the class is not supervision; the write
	// gate matches the incident read scope.
	_, err = env.svc.CreateIncident(context.Background(), dto.CreateIncidentRequest{
		StudentID:  env.studentID,
		BehaviorID: env.helpingID,
		Date:       "2026-09-01",
	}, constants.RoleTeacher, env.lecturerID)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}

func TestIncidentUnknownBehavior(t *testing.T) {
	env := newBehaviorEnv(t)

	_, err := env.svc.CreateIncident(context.Background(), dto.CreateIncidentRequest{
		StudentID:  env.studentID,
		BehaviorID: uuid.New(),
		Date:       "2026-09-01",
	}, constants.RoleAdmin, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
