package repositories

import (
	"context"
	"testing"
	"time"

	"agenthub/internal/common"
	"agenthub/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TenantRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     TenantRepository
	tenantID uuid.UUID
	context  context.Context
}

func (suite *TenantRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTenantRepository(mock)
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *TenantRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestTenantRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TenantRepoTestSuite))
}

func (suite *TenantRepoTestSuite) TestCreate_Success() {
	tenant := &models.Tenant{
		ID:   suite.tenantID,
		Name: "Acme",
		Plan: "FREE",
	}

	suite.mock.ExpectExec(`
			INSERT INTO tenants \(id, name, plan, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, NOW\(\), NOW\(\)\)
		`).WithArgs(tenant.ID, tenant.Name, tenant.Plan).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, tenant)
	assert.NoError(suite.T(), err)
}

func (suite *TenantRepoTestSuite) TestCreate_DuplicateName() {
	tenant := &models.Tenant{
		ID:   suite.tenantID,
		Name: "Acme",
		Plan: "FREE",
	}

	suite.mock.ExpectExec(`
			INSERT INTO tenants \(id, name, plan, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, NOW\(\), NOW\(\)\)
		`).WithArgs(tenant.ID, tenant.Name, tenant.Plan).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tenants_name_key"})

	err := suite.repo.Create(suite.context, tenant)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *TenantRepoTestSuite) TestGetByID_Success() {
	now := time.Now()

	suite.mock.ExpectQuery(`
			SELECT id, name, plan, created_at, updated_at
			FROM tenants
			WHERE id = \$1
		`).WithArgs(suite.tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "plan", "created_at", "updated_at"}).
			AddRow(suite.tenantID, "Acme", "PRO", now, now))

	tenant, err := suite.repo.GetByID(suite.context, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenantID, tenant.ID)
	assert.Equal(suite.T(), "Acme", tenant.Name)
	assert.Equal(suite.T(), "PRO", tenant.Plan)
}

func (suite *TenantRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`
			SELECT id, name, plan, created_at, updated_at
			FROM tenants
			WHERE id = \$1
		`).WithArgs(suite.tenantID).
		WillReturnError(pgx.ErrNoRows)

	tenant, err := suite.repo.GetByID(suite.context, suite.tenantID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), tenant)
}

func (suite *TenantRepoTestSuite) TestCounts() {
	suite.mock.ExpectQuery(`
			SELECT
				\(SELECT COUNT\(\*\) FROM users WHERE tenant_id = \$1\),
				\(SELECT COUNT\(\*\) FROM agents WHERE tenant_id = \$1\),
				\(SELECT COUNT\(\*\) FROM tools WHERE tenant_id = \$1\),
				\(SELECT COUNT\(\*\) FROM conversations WHERE tenant_id = \$1\),
				\(SELECT COUNT\(\*\) FROM documents WHERE tenant_id = \$1\)
		`).WithArgs(suite.tenantID).
		WillReturnRows(pgxmock.NewRows([]string{"users", "agents", "tools", "conversations", "documents"}).
			AddRow(int64(4), int64(2), int64(7), int64(19), int64(3)))

	counts, err := suite.repo.Counts(suite.context, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), counts.Users)
	assert.Equal(suite.T(), int64(2), counts.Agents)
	assert.Equal(suite.T(), int64(7), counts.Tools)
	assert.Equal(suite.T(), int64(19), counts.Conversations)
	assert.Equal(suite.T(), int64(3), counts.Documents)
}

func (suite *TenantRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM tenants WHERE id = \$1`).
		WithArgs(suite.tenantID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.tenantID)
	assert.NoError(suite.T(), err)
}

func (suite *TenantRepoTestSuite) TestList_CountsInOneQuery() {
	now := time.Now()
	columns := []string{"id", "name", "plan", "created_at", "updated_at", "users", "agents", "tools", "conversations", "documents"}
	rows := pgxmock.NewRows(columns).
		AddRow(uuid.New(), "Acme", "FREE", now, now, int64(4), int64(2), int64(7), int64(19), int64(3)).
		AddRow(uuid.New(), "Globex", "ENTERPRISE", now, now, int64(0), int64(0), int64(0), int64(0), int64(0))

	// A single query carries the counts; no per-tenant count query follows.
	suite.mock.ExpectQuery(`
			SELECT t.id, t.name, t.plan, t.created_at, t.updated_at,
				\(SELECT COUNT\(\*\) FROM users WHERE tenant_id = t.id\),
				\(SELECT COUNT\(\*\) FROM agents WHERE tenant_id = t.id\),
				\(SELECT COUNT\(\*\) FROM tools WHERE tenant_id = t.id\),
				\(SELECT COUNT\(\*\) FROM conversations WHERE tenant_id = t.id\),
				\(SELECT COUNT\(\*\) FROM documents WHERE tenant_id = t.id\)
			FROM tenants t
			ORDER BY t.created_at DESC
			LIMIT \$1 OFFSET \$2
		`).WithArgs(50, 0).
		WillReturnRows(rows)

	tenants, err := suite.repo.List(suite.context, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), tenants, 2)
	assert.Equal(suite.T(), "Acme", tenants[0].Name)
	assert.Equal(suite.T(), int64(19), tenants[0].Counts.Conversations)
	assert.Equal(suite.T(), "Globex", tenants[1].Name)
	assert.Equal(suite.T(), int64(0), tenants[1].Counts.Users)
}
