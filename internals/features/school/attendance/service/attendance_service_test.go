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
	dto "schoolhub_backend/internals/features/school/attendance/dto"
	service "schoolhub_backend/internals/features/school/attendance/service"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	lessonModel "schoolhub_backend/internals/features/school/lessons/model"
	studentModel "schoolhub_backend/internals/features/school/students/model"
)

type attendanceEnv struct {
	db  *gorm.DB
	svc *service.AttendanceService

	teacherID    uuid.UUID
	lecturerID   uuid.UUID
	ownStudent   uuid.UUID
	otherStudent uuid.UUID
}

func newAttendanceEnv(t *testing.T) *attendanceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	env := &attendanceEnv{
		db:         db,
		svc:        service.NewAttendanceService(db),
		teacherID:  uuid.New(),
		lecturerID: uuid.New(),
	}

	gradeID := uuid.New()
	now := time.Now()
	require.NoError(t, db.Exec("INSERT INTO grades (id, level, created_at, updated_at) VALUES (?, 7, ?, ?)",
		gradeID, now, now).Error)

	supervised := classModel.ClassModel{Name: "7A", Capacity: 30, GradeID: gradeID, SupervisorID: &env.teacherID}
	other := classModel.ClassModel{Name: "7B", Capacity: 30, GradeID: gradeID}
	require.NoError(t, db.Create(&supervised).Error)
	require.NoError(t, db.Create(&other).Error)

	parentID := uuid.New()
	students := []studentModel.StudentModel{
		{ID: uuid.New(), Username: "kid.one", Name: "Kid", Surname: "One", Address: "a", Sex: "male",
			BirthDate: now, ClassID: supervised.ID, GradeID: gradeID, ParentID: parentID, RollNo: 1},
		{ID: uuid.New(), Username: "kid.two", Name: "Kid", Surname: "Two", Address: "a", Sex: "male",
			BirthDate: now, ClassID: other.ID, GradeID: gradeID, ParentID: parentID, RollNo: 1},
	}
	require.NoError(t, db.Create(&students).Error)
	env.ownStudent = students[0].ID
	env.otherStudent = students[1].ID

	// The lecturer teaches a lesson in the supervised class but does
	// not supervise it.
	require.NoError(t, db.Create(&lessonModel.LessonModel{
		Name:      "Math",
		Day:       "monday",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		SubjectID: uuid.New(),
		ClassID:   supervised.ID,
		TeacherID: env.lecturerID,
	}).Error)

	return env
}

func boolPtr(b bool) *bool { return &b }

func TestAttendanceOneRowPerDay(t *testing.T) {
	env := newAttendanceEnv(t)
	ctx := context.Background()

	req := dto.CreateAttendanceRequest{
		StudentID: env.ownStudent,
		Date:      "2026-09-01",
		Present:   boolPtr(true),
	}
	m, err := env.svc.Create(ctx, req, constants.RoleAdmin, uuid.New())
	require.NoError(t, err)
	assert.True(t, m.Present)

	req.Present = boolPtr(false)
	_, err = env.svc.Create(ctx, req, constants.RoleAdmin, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	// A different day is fine.
	req.Date = "2026-09-02"
	_, err = env.svc.Create(ctx, req, constants.RoleAdmin, uuid.New())
	require.NoError(t, err)
}

func TestAttendanceRejectsMalformedDate(t *testing.T) {
	env := newAttendanceEnv(t)

	_, err := env.svc.Create(context.Background(), dto.CreateAttendanceRequest{
		StudentID: env.ownStudent,
		Date:      "01/09/2026",
		Present:   boolPtr(true),
	}, constants.RoleAdmin, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestAttendanceTeacherLimitedToOwnStudents(t *testing.T) {
	env := newAttendanceEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: env.ownStudent,
		Date:      "2026-09-01",
		Present:   boolPtr(true),
	}, constants.RoleTeacher, env.teacherID)
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: env.otherStudent,
		Date:      "2026-09-01",
		Present:   boolPtr(true),
	}, constants.RoleTeacher, env.teacherID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	// Teaching a lesson in the class is not enough; only the class
	// supervisor may write, matching what the read scope lists.
	_, err = env.svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: env.ownStudent,
		Date:      "2026-09-02",
		Present:   boolPtr(true),
	}, constants.RoleTeacher, env.lecturerID)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}

func TestAttendanceUpdateFlipsPresent(t *testing.T) {
	env := newAttendanceEnv(t)
	ctx := context.Background()

	m, err := env.svc.Create(ctx, dto.CreateAttendanceRequest{
		StudentID: env.ownStudent,
		Date:      "2026-09-01",
		Present:   boolPtr(true),
	}, constants.RoleAdmin, uuid.New())
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, m.ID, dto.UpdateAttendanceRequest{Present: boolPtr(false)}, constants.RoleAdmin, uuid.New())
	require.NoError(t, err)
	assert.False(t, updated.Present)

	// A teacher without a claim on the student cannot touch the row.
	_, err = env.svc.Update(ctx, m.ID, dto.UpdateAttendanceRequest{Present: boolPtr(true)}, constants.RoleTeacher, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}
