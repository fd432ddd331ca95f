package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	dto "schoolhub_backend/internals/features/school/assessments/dto"
	model "schoolhub_backend/internals/features/school/assessments/model"
	lessonModel "schoolhub_backend/internals/features/school/lessons/model"
)

// AssessmentService guards staff writes on exams, assignments and
// results: admins may touch any lesson, teachers only lessons they
// teach.
type AssessmentService struct {
	DB *gorm.DB
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{DB: db}
}

// EnsureLessonWritable resolves the lesson and rejects a teacher who
// does not teach it.
func (s *AssessmentService) EnsureLessonWritable(ctx context.Context, lessonID uuid.UUID, role string, userID uuid.UUID) error {
	var lesson lessonModel.LessonModel
	if err := s.DB.WithContext(ctx).First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found.")
		}
		return err
	}
	if role == constants.RoleTeacher && lesson.TeacherID != userID {
		return fiber.NewError(fiber.StatusForbidden, "You can only manage assessments for your own lessons.")
	}
	return nil
}

// ResultLessonID resolves the lesson behind a result's exam or
// assignment target.
func (s *AssessmentService) ResultLessonID(ctx context.Context, examID, assignmentID *uuid.UUID) (uuid.UUID, error) {
	if examID != nil {
		var exam model.ExamModel
		if err := s.DB.WithContext(ctx).First(&exam, "id = ?", *examID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Exam not found.")
			}
			return uuid.Nil, err
		}
		return exam.LessonID, nil
	}
	var assignment model.AssignmentModel
	if err := s.DB.WithContext(ctx).First(&assignment, "id = ?", *assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found.")
		}
		return uuid.Nil, err
	}
	return assignment.LessonID, nil
}

func (s *AssessmentService) CreateResult(ctx context.Context, req dto.CreateResultRequest, role string, userID uuid.UUID) (*model.ResultModel, error) {
	if !req.ExactlyOneTarget() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A result must target exactly one exam or assignment.")
	}

	lessonID, err := s.ResultLessonID(ctx, req.ExamID, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureLessonWritable(ctx, lessonID, role, userID); err != nil {
		return nil, err
	}

	var n int64
	if err := s.DB.WithContext(ctx).Table("students").Where("id = ?", req.StudentID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found.")
	}

	dup := s.DB.WithContext(ctx).Table("results").Where("student_id = ?", req.StudentID)
	if req.ExamID != nil {
		dup = dup.Where("exam_id = ?", *req.ExamID)
	} else {
		dup = dup.Where("assignment_id = ?", *req.AssignmentID)
	}
	if err := dup.Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "This student already has a result for that assessment.")
	}

	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AssessmentService) UpdateResult(ctx context.Context, id uuid.UUID, req dto.UpdateResultRequest, role string, userID uuid.UUID) (*model.ResultModel, error) {
	var existing model.ResultModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	lessonID, err := s.ResultLessonID(ctx, existing.ExamID, existing.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureLessonWritable(ctx, lessonID, role, userID); err != nil {
		return nil, err
	}

	req.ApplyToModel(&existing)
	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *AssessmentService) DeleteResult(ctx context.Context, id uuid.UUID, role string, userID uuid.UUID) error {
	var existing model.ResultModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}

	lessonID, err := s.ResultLessonID(ctx, existing.ExamID, existing.AssignmentID)
	if err != nil {
		return err
	}
	if err := s.EnsureLessonWritable(ctx, lessonID, role, userID); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Delete(&model.ResultModel{}, "id = ?", id).Error
}
