package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	TenantID  uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	Name      string          `json:"name" db:"name"`
	Version   string          `json:"version" db:"version"`
	FlowJSON  json.RawMessage `json:"flow_json" db:"flow_json"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`

	// Populated on read paths, not a column.
	ConversationCount int64 `json:"conversation_count"`
}
