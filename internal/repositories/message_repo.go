package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

// Messages have no tenant_id column; they are scoped through their owning
// conversation, which the service verifies before calling in here.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
}

type messageRepo struct {
	db Database
}

func NewMessageRepository(db Database) MessageRepository {
	return &messageRepo{db: db}
}

// Create inserts the message and reads the database timestamp back so the
// caller can return the row as stored without a second round trip.
func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, role, content, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, message.ID, message.ConversationID, message.Role, message.Content, message.Metadata).
		Scan(&message.CreatedAt)
	return translateError(err)
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, metadata, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		if err := rows.Scan(&message.ID, &message.ConversationID, &message.Role, &message.Content, &message.Metadata, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
