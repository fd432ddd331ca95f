package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	dto "schoolhub_backend/internals/features/school/parents/dto"
	model "schoolhub_backend/internals/features/school/parents/model"
	"schoolhub_backend/internals/identity"
)

type ParentService struct {
	DB       *gorm.DB
	Identity identity.Service
}

func NewParentService(db *gorm.DB, idp identity.Service) *ParentService {
	return &ParentService{DB: db, Identity: idp}
}

func (s *ParentService) Create(ctx context.Context, req dto.CreateParentRequest) (*model.ParentModel, error) {
	user, err := s.Identity.CreateUser(ctx, identity.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name + " " + req.Surname,
		Role:     constants.RoleParent,
		Email:    deref(req.Email),
	})
	if err != nil {
		if errors.Is(err, identity.ErrUsernameTaken) {
			return nil, fiber.NewError(fiber.StatusConflict, "Username is already taken.")
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "Could not create the account, please try again.")
	}

	m := req.ToModel(user.ID)
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if delErr := s.Identity.DeleteUser(ctx, user.ID); delErr != nil {
			log.Printf("[ERROR] orphaned identity record %s: local create failed (%v), compensating delete failed (%v)", user.ID, err, delErr)
		}
		return nil, err
	}
	return m, nil
}

func (s *ParentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateParentRequest) (*model.ParentModel, error) {
	var existing model.ParentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
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

func (s *ParentService) Delete(ctx context.Context, id uuid.UUID) error {
	var existing model.ParentModel
	if err := s.DB.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return err
	}

	var children int64
	if err := s.DB.WithContext(ctx).Table("students").Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return fiber.NewError(fiber.StatusConflict, "Parent still has enrolled students.")
	}

	if err := s.Identity.DeleteUser(ctx, id); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return fiber.NewError(fiber.StatusBadGateway, "Could not delete the account, please try again.")
	}
	if err := s.DB.WithContext(ctx).Delete(&model.ParentModel{}, "id = ?", id).Error; err != nil {
		log.Printf("[ERROR] identity record %s deleted but local parent row remains: %v", id, err)
		return err
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
