package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Plan      string    `json:"plan" db:"plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TenantWithCounts is a tenant row joined with its ownership counts, produced
// by list queries in one round trip.
type TenantWithCounts struct {
	Tenant
	Counts TenantCounts `json:"counts"`
}

// TenantCounts summarizes how many entities a tenant owns.
type TenantCounts struct {
	Users         int64 `json:"users"`
	Agents        int64 `json:"agents"`
	Tools         int64 `json:"tools"`
	Conversations int64 `json:"conversations"`
	Documents     int64 `json:"documents"`
}
