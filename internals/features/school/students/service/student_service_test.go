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
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/databases"
	attendanceModel "schoolhub_backend/internals/features/school/attendance/model"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	parentModel "schoolhub_backend/internals/features/school/parents/model"
	dto "schoolhub_backend/internals/features/school/students/dto"
	studentModel "schoolhub_backend/internals/features/school/students/model"
	service "schoolhub_backend/internals/features/school/students/service"
	"schoolhub_backend/internals/identity"
	"schoolhub_backend/internals/identity/dummy"
)

type studentEnv struct {
	db  *gorm.DB
	idp *dummy.Service
	svc *service.StudentService

	gradeID  uuid.UUID
	classID  uuid.UUID
	parentID uuid.UUID
}

func newStudentEnv(t *testing.T, capacity int) *studentEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	env := &studentEnv{
		db:       db,
		idp:      dummy.NewService(),
		gradeID:  uuid.New(),
		parentID: uuid.New(),
	}
	env.svc = service.NewStudentService(db, env.idp)

	now := time.Now()
	require.NoError(t, db.Exec("INSERT INTO grades (id, level, created_at, updated_at) VALUES (?, 7, ?, ?)",
		env.gradeID, now, now).Error)

	class := classModel.ClassModel{Name: "7A", Capacity: capacity, GradeID: env.gradeID}
	require.NoError(t, db.Create(&class).Error)
	env.classID = class.ID

	require.NoError(t, db.Create(&parentModel.ParentModel{
		ID:       env.parentID,
		Username: "parent.doe",
		Name:     "Pat",
		Surname:  "Doe",
		Phone:    "555-0100",
		Address:  "12 Elm St",
	}).Error)

	return env
}

func createReq(username string, rollNo int, env *studentEnv) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		Username:  username,
		Password:  "s3cret-pass",
		Name:      "Mia",
		Surname:   "Brown",
		Address:   "12 Elm St",
		Sex:       "female",
		BirthDate: time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC),
		ClassID:   env.classID,
		GradeID:   env.gradeID,
		ParentID:  env.parentID,
		RollNo:    rollNo,
	}
}

func TestStudentCreateMirrorsProviderID(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	m, err := env.svc.Create(ctx, createReq("mia.brown", 1, env))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, m.ID)

	user, err := env.idp.GetUser(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "mia.brown", user.Username)

	var row studentModel.StudentModel
	require.NoError(t, env.db.First(&row, "id = ?", m.ID).Error)
	assert.Equal(t, user.ID, row.ID)
}

func TestStudentCreateCompensatesFailedLocalWrite(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	// A local row already holds the username, so the identity create
	// succeeds but the local insert hits the unique index.
	require.NoError(t, env.db.Create(&studentModel.StudentModel{
		ID:        uuid.New(),
		Username:  "mia.brown",
		Name:      "Mia",
		Surname:   "Brown",
		Address:   "12 Elm St",
		Sex:       "female",
		BirthDate: time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC),
		ClassID:   env.classID,
		GradeID:   env.gradeID,
		ParentID:  env.parentID,
		RollNo:    1,
	}).Error)

	_, err := env.svc.Create(ctx, createReq("mia.brown", 2, env))
	require.Error(t, err)

	// The provider record was rolled back.
	var orphans int
	for _, u := range env.idp.Users() {
		if u.Username == "mia.brown" {
			orphans++
		}
	}
	assert.Zero(t, orphans)

	var n int64
	require.NoError(t, env.db.Model(&studentModel.StudentModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestStudentCreateOrphanWhenCompensationFails(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	require.NoError(t, env.db.Create(&studentModel.StudentModel{
		ID:        uuid.New(),
		Username:  "mia.brown",
		Name:      "Mia",
		Surname:   "Brown",
		Address:   "12 Elm St",
		Sex:       "female",
		BirthDate: time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC),
		ClassID:   env.classID,
		GradeID:   env.gradeID,
		ParentID:  env.parentID,
		RollNo:    1,
	}).Error)

	env.idp.FailDelete = assert.AnError
	_, err := env.svc.Create(ctx, createReq("mia.brown", 2, env))
	require.Error(t, err)

	// Compensation failed, so the provider record is left behind.
	var orphans int
	for _, u := range env.idp.Users() {
		if u.Username == "mia.brown" {
			orphans++
		}
	}
	assert.Equal(t, 1, orphans)
}

func TestStudentCreateUsernameTaken(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, createReq("mia.brown", 1, env))
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, createReq("mia.brown", 2, env))
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestStudentCreateCapacityConflict(t *testing.T) {
	env := newStudentEnv(t, 1)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, createReq("first.kid", 1, env))
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, createReq("second.kid", 2, env))
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Equal(t, "Class is already at capacity.", fe.Message)
}

func TestStudentCreateRollNoConflict(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, createReq("first.kid", 1, env))
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, createReq("second.kid", 1, env))
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Equal(t, "Roll number is already used in this class.", fe.Message)
}

func TestStudentDeleteRemovesBothRecords(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	m, err := env.svc.Create(ctx, createReq("mia.brown", 1, env))
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, m.ID))

	_, err = env.idp.GetUser(ctx, m.ID)
	assert.ErrorIs(t, err, identity.ErrNotFound)

	var n int64
	require.NoError(t, env.db.Model(&studentModel.StudentModel{}).Where("id = ?", m.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestStudentAttendancePercent(t *testing.T) {
	env := newStudentEnv(t, 30)
	ctx := context.Background()

	m, err := env.svc.Create(ctx, createReq("mia.brown", 1, env))
	require.NoError(t, err)

	pct, err := env.svc.AttendancePercent(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, pct)

	days := []struct {
		day     int
		present bool
	}{{1, true}, {2, true}, {3, true}, {4, false}}
	for _, d := range days {
		require.NoError(t, env.db.Create(&attendanceModel.AttendanceModel{
			StudentID: m.ID,
			Date:      datatypes.Date(time.Date(2026, 9, d.day, 0, 0, 0, 0, time.UTC)),
			Present:   d.present,
		}).Error)
	}

	pct, err = env.svc.AttendancePercent(ctx, m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, pct, 0.001)
}
