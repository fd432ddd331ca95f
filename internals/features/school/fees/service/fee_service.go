package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/school/fees/dto"
	model "schoolhub_backend/internals/features/school/fees/model"
	helper "schoolhub_backend/internals/helpers"
)

// FeeService keeps the status and payment fields consistent and
// enforces one fee per (student, type, year, semester).
type FeeService struct {
	DB   *gorm.DB
	Snap *snap.Client
}

func NewFeeService(db *gorm.DB, snapClient *snap.Client) *FeeService {
	return &FeeService{DB: db, Snap: snapClient}
}

func (s *FeeService) Create(ctx context.Context, req dto.CreateFeeRequest) (*model.FeeModel, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Table("students").Where("id = ?", req.StudentID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found.")
	}
	if err := s.DB.WithContext(ctx).Table("fee_types").Where("id = ?", req.FeeTypeID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Fee type not found.")
	}

	if err := s.DB.WithContext(ctx).Table("fees").
		Where("student_id = ? AND fee_type_id = ? AND academic_year = ? AND semester = ?",
			req.StudentID, req.FeeTypeID, strings.TrimSpace(req.AcademicYear), strings.TrimSpace(req.Semester)).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "This student already has this fee for that period.")
	}

	dueDate, ok := helper.ParseDate(req.DueDate)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Due date must be formatted as YYYY-MM-DD.")
	}
	paidDate, err := dto.DatePtr(req.PaidDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Paid date must be formatted as YYYY-MM-DD.")
	}

	m := &model.FeeModel{
		StudentID:     req.StudentID,
		FeeTypeID:     req.FeeTypeID,
		Amount:        req.Amount,
		PaidAmount:    req.PaidAmount,
		Status:        req.Status,
		AcademicYear:  strings.TrimSpace(req.AcademicYear),
		Semester:      strings.TrimSpace(req.Semester),
		DueDate:       datatypes.Date(dueDate),
		PaidDate:      paidDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if err := s.normalize(m); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FeeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateFeeRequest) (*model.FeeModel, error) {
	var existing model.FeeModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		existing.PaidAmount = *req.PaidAmount
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.DueDate != nil {
		d, ok := helper.ParseDate(*req.DueDate)
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Due date must be formatted as YYYY-MM-DD.")
		}
		existing.DueDate = datatypes.Date(d)
	}
	if req.PaidDate != nil {
		d, err := dto.DatePtr(req.PaidDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Paid date must be formatted as YYYY-MM-DD.")
		}
		existing.PaidDate = d
	}
	if req.PaymentMethod != nil {
		existing.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := s.normalize(&existing); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *FeeService) Delete(ctx context.Context, id uuid.UUID) error {
	var existing model.FeeModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}
	if existing.Status == model.FeeStatusPaid || existing.Status == model.FeeStatusPartial {
		return fiber.NewError(fiber.StatusConflict, "A fee with recorded payments cannot be deleted.")
	}
	return s.DB.WithContext(ctx).Delete(&model.FeeModel{}, "id = ?", id).Error
}

// normalize validates the status against the payment fields and clears
// payment data on non-paying statuses.
func (s *FeeService) normalize(m *model.FeeModel) error {
	switch m.Status {
	case model.FeeStatusPaid:
		if m.PaidAmount < m.Amount {
			return fiber.NewError(fiber.StatusBadRequest, "A paid fee requires the full amount to be paid.")
		}
		if m.PaidDate == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A paid fee requires a paid date.")
		}
		if m.PaymentMethod == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A paid fee requires a payment method.")
		}
	case model.FeeStatusPartial:
		if m.PaidAmount <= 0 || m.PaidAmount >= m.Amount {
			return fiber.NewError(fiber.StatusBadRequest, "A partial fee requires a paid amount between zero and the full amount.")
		}
	case model.FeeStatusPending, model.FeeStatusOverdue:
		m.PaidAmount = 0
		m.PaidDate = nil
		m.PaymentMethod = nil
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Unknown fee status.")
	}
	return nil
}

// Checkout creates a Snap transaction for the outstanding balance and
// returns the redirect URL.
func (s *FeeService) Checkout(ctx context.Context, id uuid.UUID) (string, error) {
	if s.Snap == nil {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Online payment is not configured.")
	}

	var fee model.FeeModel
	if err := s.DB.WithContext(ctx).First(&fee, "id = ?", id).Error; err != nil {
		return "", err
	}
	if fee.Status == model.FeeStatusPaid {
		return "", fiber.NewError(fiber.StatusConflict, "This fee is already paid.")
	}

	outstanding := int64(fee.Amount - fee.PaidAmount)
	if outstanding <= 0 {
		return "", fiber.NewError(fiber.StatusConflict, "This fee has no outstanding balance.")
	}

	orderID := fmt.Sprintf("fee-%s-%d", fee.ID, time.Now().Unix())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: outstanding,
		},
	}
	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Could not start the payment, please try again.")
	}
	return resp.RedirectURL, nil
}
