package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Counts(ctx context.Context, id uuid.UUID) (*models.TenantCounts, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.TenantWithCounts, error)
}

type tenantRepo struct {
	db Database
}

func NewTenantRepository(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, plan, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.Plan)
	return translateError(err)
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, name, plan, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return tenant, nil
}

func (r *tenantRepo) Counts(ctx context.Context, id uuid.UUID) (*models.TenantCounts, error) {
	counts := &models.TenantCounts{}
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM agents WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM tools WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM conversations WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM documents WHERE tenant_id = $1)
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&counts.Users, &counts.Agents, &counts.Tools, &counts.Conversations, &counts.Documents)
	if err != nil {
		return nil, translateError(err)
	}
	return counts, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, plan = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.Plan, tenant.ID)
	return translateError(err)
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Owned rows go with the tenant via ON DELETE CASCADE.
	query := `DELETE FROM tenants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateError(err)
}

// List returns tenants with their ownership counts in one query; listing must
// not fan out into a count query per tenant.
func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.TenantWithCounts, error) {
	query := `
		SELECT t.id, t.name, t.plan, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM users WHERE tenant_id = t.id),
			(SELECT COUNT(*) FROM agents WHERE tenant_id = t.id),
			(SELECT COUNT(*) FROM tools WHERE tenant_id = t.id),
			(SELECT COUNT(*) FROM conversations WHERE tenant_id = t.id),
			(SELECT COUNT(*) FROM documents WHERE tenant_id = t.id)
		FROM tenants t
		ORDER BY t.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var tenants []*models.TenantWithCounts
	for rows.Next() {
		tenant := &models.TenantWithCounts{}
		if err := rows.Scan(
			&tenant.ID, &tenant.Name, &tenant.Plan, &tenant.CreatedAt, &tenant.UpdatedAt,
			&tenant.Counts.Users, &tenant.Counts.Agents, &tenant.Counts.Tools,
			&tenant.Counts.Conversations, &tenant.Counts.Documents,
		); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
