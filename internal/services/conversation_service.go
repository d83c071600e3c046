package services

import (
	"context"
	"encoding/json"

	"agenthub/internal/models"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
)

type ConversationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, conversation *models.Conversation) (*models.Conversation, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ConversationDetail, error)
	Update(ctx context.Context, tenantID uuid.UUID, conversation *models.Conversation) (*models.Conversation, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, tenantID, conversationID uuid.UUID, message *models.Message) (*models.Message, error)
	ListMessages(ctx context.Context, tenantID, conversationID uuid.UUID) ([]*models.Message, error)
}

// ConversationDetail is a single conversation with its messages in creation
// order.
type ConversationDetail struct {
	models.Conversation
	Messages []*models.Message `json:"messages"`
}

type conversationService struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	agentRepo        repositories.AgentRepository
}

func NewConversationService(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	agentRepo repositories.AgentRepository,
) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		agentRepo:        agentRepo,
	}
}

func (s *conversationService) Create(ctx context.Context, tenantID uuid.UUID, conversation *models.Conversation) (*models.Conversation, error) {
	// The referenced agent must exist and belong to this tenant; a
	// cross-tenant agent id reads as NotFound, same as a missing one.
	if _, err := s.agentRepo.GetByID(ctx, tenantID, conversation.AgentID); err != nil {
		return nil, err
	}

	conversation.ID = uuid.New()
	conversation.TenantID = tenantID
	if conversation.Channel == "" {
		conversation.Channel = "web"
	}
	if conversation.State == nil {
		conversation.State = json.RawMessage("{}")
	}

	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return s.conversationRepo.GetByID(ctx, tenantID, conversation.ID)
}

func (s *conversationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ConversationDetail, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByConversation(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ConversationDetail{Conversation: *conversation, Messages: messages}, nil
}

func (s *conversationService) Update(ctx context.Context, tenantID uuid.UUID, conversation *models.Conversation) (*models.Conversation, error) {
	conversation.TenantID = tenantID
	if err := s.conversationRepo.Update(ctx, conversation); err != nil {
		return nil, err
	}
	return s.conversationRepo.GetByID(ctx, tenantID, conversation.ID)
}

func (s *conversationService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.conversationRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.conversationRepo.Delete(ctx, tenantID, id)
}

func (s *conversationService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Conversation, error) {
	return s.conversationRepo.List(ctx, tenantID, limit, offset)
}

func (s *conversationService) CreateMessage(ctx context.Context, tenantID, conversationID uuid.UUID, message *models.Message) (*models.Message, error) {
	// Ownership check through the conversation; messages carry no tenant id.
	if _, err := s.conversationRepo.GetByID(ctx, tenantID, conversationID); err != nil {
		return nil, err
	}

	message.ID = uuid.New()
	message.ConversationID = conversationID
	if message.Metadata == nil {
		message.Metadata = json.RawMessage("{}")
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Fresh messages float the conversation to the top of listings.
	if err := s.conversationRepo.Touch(ctx, tenantID, conversationID); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *conversationService) ListMessages(ctx context.Context, tenantID, conversationID uuid.UUID) ([]*models.Message, error) {
	if _, err := s.conversationRepo.GetByID(ctx, tenantID, conversationID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByConversation(ctx, conversationID)
}
