package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	dto "schoolhub_backend/internals/features/school/behavior/dto"
	model "schoolhub_backend/internals/features/school/behavior/model"
	helper "schoolhub_backend/internals/helpers"
)

// BehaviorService guards incident writes (teachers only touch their
// own students) and computes the signed point summary.
type BehaviorService struct {
	DB *gorm.DB
}

func NewBehaviorService(db *gorm.DB) *BehaviorService {
	return &BehaviorService{DB: db}
}

func (s *BehaviorService) CreateIncident(ctx context.Context, req dto.CreateIncidentRequest, role string, userID uuid.UUID) (*model.IncidentModel, error) {
	date, ok := helper.ParseDate(req.Date)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Date must be formatted as YYYY-MM-DD.")
	}

	var n int64
	if err := s.DB.WithContext(ctx).Table("behaviors").Where("id = ?", req.BehaviorID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Behavior not found.")
	}
	if err := s.ensureStudentWritable(ctx, req.StudentID, role, userID); err != nil {
		return nil, err
	}

	m := &model.IncidentModel{
		StudentID:  req.StudentID,
		BehaviorID: req.BehaviorID,
		GivenByID:  userID,
		Date:       datatypes.Date(date),
		Comment:    req.Comment,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *BehaviorService) UpdateIncident(ctx context.Context, id uuid.UUID, req dto.UpdateIncidentRequest, role string, userID uuid.UUID) (*model.IncidentModel, error) {
	var existing model.IncidentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.ensureStudentWritable(ctx, existing.StudentID, role, userID); err != nil {
		return nil, err
	}

	if req.Date != nil {
		d, ok := helper.ParseDate(*req.Date)
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Date must be formatted as YYYY-MM-DD.")
		}
		existing.Date = datatypes.Date(d)
	}
	if req.Comment != nil {
		existing.Comment = req.Comment
	}
	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *BehaviorService) DeleteIncident(ctx context.Context, id uuid.UUID, role string, userID uuid.UUID) error {
	var existing model.IncidentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.ensureStudentWritable(ctx, existing.StudentID, role, userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&model.IncidentModel{}, "id = ?", id).Error
}

// Summary sums catalog points with the sign carried by is_negative.
func (s *BehaviorService) Summary(ctx context.Context, studentID uuid.UUID) (*dto.BehaviorSummaryResponse, error) {
	base := s.DB.WithContext(ctx).Table("incidents").
		Joins("JOIN behaviors ON behaviors.id = incidents.behavior_id").
		Where("incidents.student_id = ?", studentID)

	var totals struct {
		Total int
	}
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(CASE WHEN behaviors.is_negative THEN -behaviors.points ELSE behaviors.points END), 0) AS total").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var positive, negative int64
	if err := base.Session(&gorm.Session{}).Where("behaviors.is_negative = ?", false).Count(&positive).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("behaviors.is_negative = ?", true).Count(&negative).Error; err != nil {
		return nil, err
	}

	return &dto.BehaviorSummaryResponse{
		StudentID:     studentID,
		TotalPoints:   totals.Total,
		PositiveCount: positive,
		NegativeCount: negative,
		IncidentCount: positive + negative,
	}, nil
}

// Teachers may only record incidents for students in a class they
// supervise, matching the incident read scope.
func (s *BehaviorService) ensureStudentWritable(ctx context.Context, studentID uuid.UUID, role string, userID uuid.UUID) error {
	if role != constants.RoleTeacher {
		return nil
	}
	var n int64
	err := s.DB.WithContext(ctx).Table("students").
		Where("id = ?", studentID).
		Where("class_id IN (SELECT id FROM classes WHERE supervisor_id = ?)", userID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusForbidden, "You can only record incidents for your own students.")
	}
	return nil
}
