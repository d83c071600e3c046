package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	TenantID  uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	AgentID   uuid.UUID       `json:"agent_id" db:"agent_id"`
	UserID    *uuid.UUID      `json:"user_id" db:"user_id"`
	Channel   string          `json:"channel" db:"channel"`
	State     json.RawMessage `json:"state" db:"state"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`

	// Populated on read paths, not a column.
	MessageCount int64 `json:"message_count"`
}
