package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type ToolRepository interface {
	Create(ctx context.Context, tool *models.Tool) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Tool, error)
	Update(ctx context.Context, tool *models.Tool) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ToolSummary, error)
}

type toolRepo struct {
	db Database
}

func NewToolRepository(db Database) ToolRepository {
	return &toolRepo{db: db}
}

func (r *toolRepo) Create(ctx context.Context, tool *models.Tool) error {
	query := `
		INSERT INTO tools (id, tenant_id, name, title, type, input_schema, output_schema, auth_type, auth_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		tool.ID, tool.TenantID, tool.Name, tool.Title, tool.Type,
		tool.InputSchema, tool.OutputSchema, tool.AuthType, tool.AuthConfig,
	)
	return translateError(err)
}

func (r *toolRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Tool, error) {
	tool := &models.Tool{}
	query := `
		SELECT id, tenant_id, name, title, type, input_schema, output_schema, auth_type, auth_config, created_at, updated_at
		FROM tools
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&tool.ID, &tool.TenantID, &tool.Name, &tool.Title, &tool.Type,
		&tool.InputSchema, &tool.OutputSchema, &tool.AuthType, &tool.AuthConfig,
		&tool.CreatedAt, &tool.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return tool, nil
}

func (r *toolRepo) Update(ctx context.Context, tool *models.Tool) error {
	query := `
		UPDATE tools
		SET name = $1, title = $2, type = $3, input_schema = $4, output_schema = $5, auth_type = $6, auth_config = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query,
		tool.Name, tool.Title, tool.Type, tool.InputSchema, tool.OutputSchema,
		tool.AuthType, tool.AuthConfig, tool.TenantID, tool.ID,
	)
	return translateError(err)
}

func (r *toolRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM tools WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return translateError(err)
}

// List never selects auth_config: credentials stay out of listing responses
// entirely, encrypted or not.
func (r *toolRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ToolSummary, error) {
	query := `
		SELECT id, tenant_id, name, title, type, input_schema, output_schema, auth_type, created_at, updated_at
		FROM tools
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var tools []*models.ToolSummary
	for rows.Next() {
		tool := &models.ToolSummary{}
		if err := rows.Scan(
			&tool.ID, &tool.TenantID, &tool.Name, &tool.Title, &tool.Type,
			&tool.InputSchema, &tool.OutputSchema, &tool.AuthType,
			&tool.CreatedAt, &tool.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, rows.Err()
}
