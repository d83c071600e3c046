package services

import (
	"context"

	"agenthub/internal/models"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
)

type UserService interface {
	Create(ctx context.Context, tenantID uuid.UUID, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, tenantID uuid.UUID, user *models.User) (*models.User, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, tenantID uuid.UUID, user *models.User) (*models.User, error) {
	user.ID = uuid.New()
	user.TenantID = tenantID
	if user.Role == "" {
		user.Role = "VIEWER"
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, tenantID, user.ID)
}

func (s *userService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, tenantID, id)
}

func (s *userService) Update(ctx context.Context, tenantID uuid.UUID, user *models.User) (*models.User, error) {
	user.TenantID = tenantID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, tenantID, user.ID)
}

func (s *userService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, tenantID, id)
}

func (s *userService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, tenantID, limit, offset)
}
