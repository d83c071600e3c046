package services

import (
	"context"

	"agenthub/internal/models"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
)

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TenantDetail, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*TenantDetail, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

type CreateTenantRequest struct {
	Name string `json:"name"`
	Plan string `json:"plan"`
}

type UpdateTenantRequest struct {
	Name *string `json:"name"`
	Plan *string `json:"plan"`
}

// TenantDetail is a tenant plus the counts of everything it owns.
type TenantDetail struct {
	models.Tenant
	Counts models.TenantCounts `json:"counts"`
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	plan := req.Plan
	if plan == "" {
		plan = "FREE"
	}

	tenant := &models.Tenant{
		ID:   uuid.New(),
		Name: req.Name,
		Plan: plan,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return s.tenantRepo.GetByID(ctx, tenant.ID)
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantDetail, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.tenantRepo.Counts(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TenantDetail{Tenant: *tenant, Counts: *counts}, nil
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Plan != nil {
		tenant.Plan = *req.Plan
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	// Existence check first so a missing tenant reports NotFound instead
	// of a silent no-op delete.
	if _, err := s.tenantRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tenantRepo.Delete(ctx, id)
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*TenantDetail, error) {
	tenants, err := s.tenantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]*TenantDetail, 0, len(tenants))
	for _, tenant := range tenants {
		details = append(details, &TenantDetail{Tenant: tenant.Tenant, Counts: tenant.Counts})
	}
	return details, nil
}
