package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Tool struct {
	ID           uuid.UUID              `json:"id" db:"id"`
	TenantID     uuid.UUID              `json:"tenant_id" db:"tenant_id"`
	Name         string                 `json:"name" db:"name"`
	Title        string                 `json:"title" db:"title"`
	Type         string                 `json:"type" db:"type"`
	InputSchema  json.RawMessage        `json:"input_schema" db:"input_schema"`
	OutputSchema json.RawMessage        `json:"output_schema" db:"output_schema"`
	AuthType     string                 `json:"auth_type" db:"auth_type"`
	AuthConfig   map[string]interface{} `json:"auth_config" db:"auth_config"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" db:"updated_at"`
}

// ToolSummary is the listing view of a tool. It deliberately has no
// auth config field: list responses must never carry credentials,
// encrypted or otherwise.
type ToolSummary struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	TenantID     uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	Name         string          `json:"name" db:"name"`
	Title        string          `json:"title" db:"title"`
	Type         string          `json:"type" db:"type"`
	InputSchema  json.RawMessage `json:"input_schema" db:"input_schema"`
	OutputSchema json.RawMessage `json:"output_schema" db:"output_schema"`
	AuthType     string          `json:"auth_type" db:"auth_type"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}
