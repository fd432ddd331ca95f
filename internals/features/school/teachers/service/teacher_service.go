package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	academicsModel "schoolhub_backend/internals/features/school/academics/model"
	dto "schoolhub_backend/internals/features/school/teachers/dto"
	model "schoolhub_backend/internals/features/school/teachers/model"
	"schoolhub_backend/internals/identity"
)

// TeacherService mirrors the student lifecycle: provider record first,
// local row keyed by the provider id, compensating delete on failure.
type TeacherService struct {
	DB       *gorm.DB
	Identity identity.Service
}

func NewTeacherService(db *gorm.DB, idp identity.Service) *TeacherService {
	return &TeacherService{DB: db, Identity: idp}
}

func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*model.TeacherModel, error) {
	subjects, err := s.resolveSubjects(ctx, req.SubjectIDs)
	if err != nil {
		return nil, err
	}

	user, err := s.Identity.CreateUser(ctx, identity.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name + " " + req.Surname,
		Role:     constants.RoleTeacher,
		Email:    deref(req.Email),
	})
	if err != nil {
		if errors.Is(err, identity.ErrUsernameTaken) {
			return nil, fiber.NewError(fiber.StatusConflict, "Username is already taken.")
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Could not create the account, please try again.")
	}

	m := req.ToModel(user.ID)
	m.Subjects = subjects
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if delErr := s.Identity.DeleteUser(ctx, user.ID); delErr != nil {
			log.Printf("[ERROR] orphaned identity record %s: local create failed (%v), compensating delete failed (%v)", user.ID, err, delErr)
		}
		return nil, err
	}
	return m, nil
}

func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTeacherRequest) (*model.TeacherModel, error) {
	var existing model.TeacherModel
	if err := s.DB.WithContext(ctx).Preload("Subjects").First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	var subjects []academicsModel.SubjectModel
	if req.SubjectIDs != nil {
		var err error
		subjects, err = s.resolveSubjects(ctx, *req.SubjectIDs)
		if err != nil {
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
	if err := s.DB.WithContext(ctx).Omit("Subjects").Save(&existing).Error; err != nil {
		return nil, err
	}
	if req.SubjectIDs != nil {
		if err := s.DB.WithContext(ctx).Model(&existing).Association("Subjects").Replace(subjects); err != nil {
			return nil, err
		}
		existing.Subjects = subjects
	}
	return &existing, nil
}

func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	var existing model.TeacherModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}

	if err := s.Identity.DeleteUser(ctx, id); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return fiber.NewError(fiber.StatusBadGateway, "Could not delete the account, please try again.")
	}
	if err := s.DB.WithContext(ctx).Select("Subjects").Delete(&model.TeacherModel{ID: id}).Error; err != nil {
		log.Printf("[ERROR] identity record %s deleted but local teacher row remains: %v", id, err)
		return err
	}
	return nil
}

func (s *TeacherService) resolveSubjects(ctx context.Context, ids []uuid.UUID) ([]academicsModel.SubjectModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subjects []academicsModel.SubjectModel
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&subjects).Error; err != nil {
		return nil, err
	}
	if len(subjects) != len(ids) {
		return nil, fiber.NewError(fiber.StatusNotFound, "One or more subjects were not found.")
	}
	return subjects, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
