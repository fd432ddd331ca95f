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

	"schoolhub_backend/internals/databases"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	dto "schoolhub_backend/internals/features/school/fees/dto"
	model "schoolhub_backend/internals/features/school/fees/model"
	service "schoolhub_backend/internals/features/school/fees/service"
	studentModel "schoolhub_backend/internals/features/school/students/model"
)

type feeEnv struct {
	db  *gorm.DB
	svc *service.FeeService

	studentID uuid.UUID
	feeTypeID uuid.UUID
}

func newFeeEnv(t *testing.T) *feeEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.AutoMigrate(db))

	gradeID := uuid.New()
	now := time.Now()
	require.NoError(t, db.Exec("INSERT INTO grades (id, level, created_at, updated_at) VALUES (?, 7, ?, ?)",
		gradeID, now, now).Error)

	class := classModel.ClassModel{Name: "7A", Capacity: 30, GradeID: gradeID}
	require.NoError(t, db.Create(&class).Error)

	student := studentModel.StudentModel{
		ID: uuid.New(), Username: "kid.one", Name: "Kid", Surname: "One",
		Address: "a", Sex: "male", BirthDate: now,
		ClassID: class.ID, GradeID: gradeID, ParentID: uuid.New(), RollNo: 1,
	}
	require.NoError(t, db.Create(&student).Error)

	feeType := model.FeeTypeModel{Name: "Tuition"}
	require.NoError(t, db.Create(&feeType).Error)

	return &feeEnv{
		db:        db,
		svc:       service.NewFeeService(db, nil),
		studentID: student.ID,
		feeTypeID: feeType.ID,
	}
}

func (e *feeEnv) baseRequest() dto.CreateFeeRequest {
	return dto.CreateFeeRequest{
		StudentID:    e.studentID,
		FeeTypeID:    e.feeTypeID,
		Amount:       500,
		Status:       model.FeeStatusPending,
		AcademicYear: "2026/2027",
		Semester:     "1",
		DueDate:      "2026-10-01",
	}
}

func strPtr(s string) *string { return &s }

func TestFeeCreateRejectsDuplicatePeriod(t *testing.T) {
	env := newFeeEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, env.baseRequest())
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, env.baseRequest())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	// A different semester is a new fee.
	req := env.baseRequest()
	req.Semester = "2"
	_, err = env.svc.Create(ctx, req)
	require.NoError(t, err)
}

func TestFeeStatusValidation(t *testing.T) {
	env := newFeeEnv(t)
	ctx := context.Background()

	t.Run("paid without paid date", func(t *testing.T) {
		req := env.baseRequest()
		req.Status = model.FeeStatusPaid
		req.PaidAmount = 500
		_, err := env.svc.Create(ctx, req)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("paid without payment method", func(t *testing.T) {
		req := env.baseRequest()
		req.Status = model.FeeStatusPaid
		req.PaidAmount = 500
		req.PaidDate = strPtr("2026-09-20")
		_, err := env.svc.Create(ctx, req)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("paid below full amount", func(t *testing.T) {
		req := env.baseRequest()
		req.Status = model.FeeStatusPaid
		req.PaidAmount = 300
		req.PaidDate = strPtr("2026-09-20")
		_, err := env.svc.Create(ctx, req)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("partial outside bounds", func(t *testing.T) {
		for _, paid := range []float64{0, 500, 700} {
			req := env.baseRequest()
			req.Status = model.FeeStatusPartial
			req.PaidAmount = paid
			_, err := env.svc.Create(ctx, req)
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		}
	})

	t.Run("valid partial", func(t *testing.T) {
		req := env.baseRequest()
		req.Status = model.FeeStatusPartial
		req.PaidAmount = 200
		m, err := env.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.FeeStatusPartial, m.Status)
		assert.Equal(t, 200.0, m.PaidAmount)
	})

	t.Run("valid paid", func(t *testing.T) {
		req := env.baseRequest()
		req.Semester = "2"
		req.Status = model.FeeStatusPaid
		req.PaidAmount = 500
		req.PaidDate = strPtr("2026-09-20")
		req.PaymentMethod = strPtr("bank transfer")
		m, err := env.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.FeeStatusPaid, m.Status)
	})
}

func TestFeeUpdateToPendingClearsPaymentFields(t *testing.T) {
	env := newFeeEnv(t)
	ctx := context.Background()

	req := env.baseRequest()
	req.Status = model.FeeStatusPartial
	req.PaidAmount = 200
	req.PaymentMethod = strPtr("cash")
	m, err := env.svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, m.ID, dto.UpdateFeeRequest{
		Status: strPtr(model.FeeStatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, model.FeeStatusPending, updated.Status)
	assert.Zero(t, updated.PaidAmount)
	assert.Nil(t, updated.PaidDate)
	assert.Nil(t, updated.PaymentMethod)
}

func TestFeeDeleteBlockedOncePaid(t *testing.T) {
	env := newFeeEnv(t)
	ctx := context.Background()

	req := env.baseRequest()
	req.Status = model.FeeStatusPaid
	req.PaidAmount = 500
	req.PaidDate = strPtr("2026-09-20")
	req.PaymentMethod = strPtr("cash")
	m, err := env.svc.Create(ctx, req)
	require.NoError(t, err)

	err = env.svc.Delete(ctx, m.ID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	// Pending fees can go.
	req2 := env.baseRequest()
	req2.Semester = "2"
	m2, err := env.svc.Create(ctx, req2)
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(ctx, m2.ID))
}

func TestFeeCheckoutWithoutGateway(t *testing.T) {
	env := newFeeEnv(t)
	ctx := context.Background()

	m, err := env.svc.Create(ctx, env.baseRequest())
	require.NoError(t, err)

	_, err = env.svc.Checkout(ctx, m.ID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusServiceUnavailable, fe.Code)
}
