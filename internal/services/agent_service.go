package services

import (
	"context"
	"fmt"

	"agenthub/internal/common"
	"agenthub/internal/models"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
)

type AgentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, agent *models.Agent) (*models.Agent, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Agent, error)
	Update(ctx context.Context, tenantID uuid.UUID, agent *models.Agent) (*models.Agent, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*models.Agent, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Agent, error)
}

type agentService struct {
	agentRepo        repositories.AgentRepository
	conversationRepo repositories.ConversationRepository
}

func NewAgentService(agentRepo repositories.AgentRepository, conversationRepo repositories.ConversationRepository) AgentService {
	return &agentService{agentRepo: agentRepo, conversationRepo: conversationRepo}
}

func (s *agentService) Create(ctx context.Context, tenantID uuid.UUID, agent *models.Agent) (*models.Agent, error) {
	agent.ID = uuid.New()
	agent.TenantID = tenantID
	if agent.Version == "" {
		agent.Version = "0.1.0"
	}
	agent.Status = "DRAFT"

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return s.agentRepo.GetByID(ctx, tenantID, agent.ID)
}

func (s *agentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Agent, error) {
	return s.agentRepo.GetByID(ctx, tenantID, id)
}

func (s *agentService) Update(ctx context.Context, tenantID uuid.UUID, agent *models.Agent) (*models.Agent, error) {
	agent.TenantID = tenantID
	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}
	return s.agentRepo.GetByID(ctx, tenantID, agent.ID)
}

func (s *agentService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*models.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	agent.Status = status
	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	return s.agentRepo.GetByID(ctx, tenantID, id)
}

// Delete refuses to remove an agent that still has conversations; callers
// must delete those first. The agent and its conversations are untouched on
// refusal.
func (s *agentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.agentRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}

	conversationCount, err := s.conversationRepo.CountByAgent(ctx, id)
	if err != nil {
		return err
	}
	if conversationCount > 0 {
		return fmt.Errorf("agent has %d dependent conversation(s): %w", conversationCount, common.ErrConflict)
	}

	return s.agentRepo.Delete(ctx, tenantID, id)
}

func (s *agentService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Agent, error) {
	return s.agentRepo.List(ctx, tenantID, limit, offset)
}
