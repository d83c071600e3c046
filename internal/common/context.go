package common

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	TenantKey   contextKey = "tenant"
)

// GetTenantIDFromContext extracts the resolved tenant ID from the request context.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

// GetTenantFromContext extracts the resolved tenant record from the request context.
func GetTenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	tenant, ok := ctx.Value(TenantKey).(*models.Tenant)
	return tenant, ok
}
