package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Conversation, error)
	Update(ctx context.Context, conversation *models.Conversation) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Conversation, error)
	CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error)
	Touch(ctx context.Context, tenantID, id uuid.UUID) error
}

type conversationRepo struct {
	db Database
}

func NewConversationRepository(db Database) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, conversation *models.Conversation) error {
	query := `
		INSERT INTO conversations (id, tenant_id, agent_id, user_id, channel, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		conversation.ID, conversation.TenantID, conversation.AgentID,
		conversation.UserID, conversation.Channel, conversation.State,
	)
	return translateError(err)
}

func (r *conversationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	query := `
		SELECT c.id, c.tenant_id, c.agent_id, c.user_id, c.channel, c.state, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c
		WHERE c.tenant_id = $1 AND c.id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&conversation.ID, &conversation.TenantID, &conversation.AgentID, &conversation.UserID,
		&conversation.Channel, &conversation.State, &conversation.CreatedAt, &conversation.UpdatedAt,
		&conversation.MessageCount,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return conversation, nil
}

func (r *conversationRepo) Update(ctx context.Context, conversation *models.Conversation) error {
	query := `
		UPDATE conversations
		SET channel = $1, state = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, conversation.Channel, conversation.State, conversation.TenantID, conversation.ID)
	return translateError(err)
}

func (r *conversationRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM conversations WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return translateError(err)
}

func (r *conversationRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.tenant_id, c.agent_id, c.user_id, c.channel, c.state, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c
		WHERE c.tenant_id = $1
		ORDER BY c.updated_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		conversation := &models.Conversation{}
		if err := rows.Scan(
			&conversation.ID, &conversation.TenantID, &conversation.AgentID, &conversation.UserID,
			&conversation.Channel, &conversation.State, &conversation.CreatedAt, &conversation.UpdatedAt,
			&conversation.MessageCount,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, conversation)
	}
	return conversations, rows.Err()
}

func (r *conversationRepo) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM conversations WHERE agent_id = $1`
	err := r.db.QueryRow(ctx, query, agentID).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Touch bumps updated_at so conversations with fresh messages sort first.
func (r *conversationRepo) Touch(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `UPDATE conversations SET updated_at = NOW() WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return translateError(err)
}
