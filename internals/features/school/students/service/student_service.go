package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	classModel "schoolhub_backend/internals/features/school/classes/model"
	dto "schoolhub_backend/internals/features/school/students/dto"
	model "schoolhub_backend/internals/features/school/students/model"
	"schoolhub_backend/internals/identity"
)

// StudentService owns the two-phase student lifecycle: the identity
// provider record is created first, the local row mirrors its id, and
// a failed local write triggers a best-effort compensating delete.
type StudentService struct {
	DB       *gorm.DB
	Identity identity.Service
}

func NewStudentService(db *gorm.DB, idp identity.Service) *StudentService {
	return &StudentService{DB: db, Identity: idp}
}

func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*model.StudentModel, error) {
	if err := s.checkReferences(req.ClassID, req.GradeID, req.ParentID); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(req.ClassID, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkRollNo(req.ClassID, req.RollNo, uuid.Nil); err != nil {
		return nil, err
	}

	// Phase 1: identity provider record.
	user, err := s.Identity.CreateUser(ctx, identity.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name + " " + req.Surname,
		Role:     constants.RoleStudent,
		Email:    deref(req.Email),
	})
	if err != nil {
		if errors.Is(err, identity.ErrUsernameTaken) {
			return nil, fiber.NewError(fiber.StatusConflict, "Username is already taken.")
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Could not create the account, please try again.")
	}

	// Phase 2: local row keyed by the provider id.
	m := req.ToModel(user.ID)
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		// Manual compensation; there is no transaction across the two
		// systems. A failed compensation leaves an orphaned identity
		// record and is only logged (accepted gap).
		if delErr := s.Identity.DeleteUser(ctx, user.ID); delErr != nil {
			log.Printf("[ERROR] orphaned identity record %s: local create failed (%v), compensating delete failed (%v)", user.ID, err, delErr)
		}
		return nil, err
	}
	return m, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStudentRequest) (*model.StudentModel, error) {
	var existing model.StudentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	targetClass := existing.ClassID
	if req.ClassID != nil {
		targetClass = *req.ClassID
	}
	if req.ClassID != nil || req.GradeID != nil || req.ParentID != nil {
		gradeID := existing.GradeID
		if req.GradeID != nil {
			gradeID = *req.GradeID
		}
		parentID := existing.ParentID
		if req.ParentID != nil {
			parentID = *req.ParentID
		}
		if err := s.checkReferences(targetClass, gradeID, parentID); err != nil {
			return nil, err
		}
	}
	if req.ClassID != nil && *req.ClassID != existing.ClassID {
		if err := s.checkCapacity(*req.ClassID, id); err != nil {
			return nil, err
		}
	}
	if req.RollNo != nil || (req.ClassID != nil && *req.ClassID != existing.ClassID) {
		rollNo := existing.RollNo
		if req.RollNo != nil {
			rollNo = *req.RollNo
		}
		if err := s.checkRollNo(targetClass, rollNo, id); err != nil {
			return nil, err
		}
	}

	if req.Username != nil || req.Password != nil || req.Email != nil || req.Name != nil || req.Surname != nil {
		name := existing.Name
		if req.Name != nil {
			name = *req.Name
		}
		surname := existing.Surname
		if req.Surname != nil {
			surname = *req.Surname
		}
		full := name + " " + surname
		err := s.Identity.UpdateUser(ctx, id, identity.UpdateUserInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			Name:     &full,
		})
		if err != nil {
			if errors.Is(err, identity.ErrUsernameTaken) {
				return nil, fiber.NewError(fiber.StatusConflict, "Username is already taken.")
			}
			if errors.Is(err, identity.ErrNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Account not found at the identity provider.")
			}
			return nil, fiber.NewError(fiber.StatusBadGateway, "Could not update the account, please try again.")
		}
	}

	req.ApplyToModel(&existing)
	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	var existing model.StudentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}

	if err := s.Identity.DeleteUser(ctx, id); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return fiber.NewError(fiber.StatusBadGateway, "Could not delete the account, please try again.")
	}
	if err := s.DB.WithContext(ctx).Delete(&model.StudentModel{}, "id = ?", id).Error; err != nil {
		log.Printf("[ERROR] identity record %s deleted but local student row remains: %v", id, err)
		return err
	}
	return nil
}

// AttendancePercent: present days over recorded days for one student.
func (s *StudentService) AttendancePercent(ctx context.Context, studentID uuid.UUID) (float64, error) {
	var total, present int64
	if err := s.DB.WithContext(ctx).Table("attendances").
		Where("student_id = ?", studentID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.DB.WithContext(ctx).Table("attendances").
		Where("student_id = ? AND present = ?", studentID, true).Count(&present).Error; err != nil {
		return 0, err
	}
	return float64(present) / float64(total) * 100, nil
}

/* ===================== pre-checks ===================== */

func (s *StudentService) checkReferences(classID, gradeID, parentID uuid.UUID) error {
	var n int64
	if err := s.DB.Table("classes").Where("id = ?", classID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Class not found.")
	}
	if err := s.DB.Table("grades").Where("id = ?", gradeID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Grade not found.")
	}
	if err := s.DB.Table("parents").Where("id = ?", parentID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Parent not found.")
	}
	return nil
}

// checkCapacity rejects a create/move into a class that is full.
// Check-then-act; acceptable at human form-submission rates.
func (s *StudentService) checkCapacity(classID, excludeStudent uuid.UUID) error {
	var class classModel.ClassModel
	if err := s.DB.First(&class, "id = ?", classID).Error; err != nil {
		return err
	}
	tx := s.DB.Table("students").Where("class_id = ?", classID)
	if excludeStudent != uuid.Nil {
		tx = tx.Where("id <> ?", excludeStudent)
	}
	var enrolled int64
	if err := tx.Count(&enrolled).Error; err != nil {
		return err
	}
	if enrolled >= int64(class.Capacity) {
		return fiber.NewError(fiber.StatusConflict, "Class is already at capacity.")
	}
	return nil
}

func (s *StudentService) checkRollNo(classID uuid.UUID, rollNo int, excludeStudent uuid.UUID) error {
	tx := s.DB.Table("students").Where("class_id = ? AND roll_no = ?", classID, rollNo)
	if excludeStudent != uuid.Nil {
		tx = tx.Where("id <> ?", excludeStudent)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, "Roll number is already used in this class.")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
