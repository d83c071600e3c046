package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *models.Agent) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Agent, error)
	Update(ctx context.Context, agent *models.Agent) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Agent, error)
}

type agentRepo struct {
	db Database
}

func NewAgentRepository(db Database) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, agent *models.Agent) error {
	query := `
		INSERT INTO agents (id, tenant_id, name, version, flow_json, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, agent.ID, agent.TenantID, agent.Name, agent.Version, agent.FlowJSON, agent.Status)
	return translateError(err)
}

func (r *agentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Agent, error) {
	agent := &models.Agent{}
	query := `
		SELECT a.id, a.tenant_id, a.name, a.version, a.flow_json, a.status, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM conversations c WHERE c.agent_id = a.id)
		FROM agents a
		WHERE a.tenant_id = $1 AND a.id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&agent.ID, &agent.TenantID, &agent.Name, &agent.Version, &agent.FlowJSON,
		&agent.Status, &agent.CreatedAt, &agent.UpdatedAt, &agent.ConversationCount,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return agent, nil
}

func (r *agentRepo) Update(ctx context.Context, agent *models.Agent) error {
	query := `
		UPDATE agents
		SET name = $1, version = $2, flow_json = $3, status = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, agent.Name, agent.Version, agent.FlowJSON, agent.Status, agent.TenantID, agent.ID)
	return translateError(err)
}

func (r *agentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	// conversations.agent_id is ON DELETE RESTRICT; the service checks the
	// count first, the constraint backstops concurrent creates.
	query := `DELETE FROM agents WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return translateError(err)
}

func (r *agentRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Agent, error) {
	query := `
		SELECT a.id, a.tenant_id, a.name, a.version, a.flow_json, a.status, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM conversations c WHERE c.agent_id = a.id)
		FROM agents a
		WHERE a.tenant_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var agents []*models.Agent
	for rows.Next() {
		agent := &models.Agent{}
		if err := rows.Scan(
			&agent.ID, &agent.TenantID, &agent.Name, &agent.Version, &agent.FlowJSON,
			&agent.Status, &agent.CreatedAt, &agent.UpdatedAt, &agent.ConversationCount,
		); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}
