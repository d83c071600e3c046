package services

import (
	"context"
	"encoding/json"
	"testing"

	"agenthub/internal/common"
	"agenthub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Agent, error) {
	args := m.Called(ctx, tenantID, id)
	if rf, ok := args.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *models.Agent); ok {
		return rf(ctx, tenantID, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *models.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockAgentRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Agent, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Agent), args.Error(1)
}

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Conversation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Update(ctx context.Context, conversation *models.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockConversationRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Conversation, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversationRepository) Touch(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type AgentServiceTestSuite struct {
	suite.Suite
	mockAgentRepo        *MockAgentRepository
	mockConversationRepo *MockConversationRepository
	service              AgentService
	tenantID             uuid.UUID
}

func (suite *AgentServiceTestSuite) SetupTest() {
	suite.mockAgentRepo = &MockAgentRepository{}
	suite.mockAgentRepo.Test(suite.T())
	suite.mockConversationRepo = &MockConversationRepository{}
	suite.mockConversationRepo.Test(suite.T())

	suite.service = NewAgentService(suite.mockAgentRepo, suite.mockConversationRepo)
	suite.tenantID = uuid.New()
}

func (suite *AgentServiceTestSuite) TearDownTest() {
	suite.mockAgentRepo.AssertExpectations(suite.T())
	suite.mockConversationRepo.AssertExpectations(suite.T())
}

func TestAgentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AgentServiceTestSuite))
}

func (suite *AgentServiceTestSuite) TestCreate_DefaultsStatusAndVersion() {
	ctx := context.Background()
	agent := &models.Agent{
		Name:     "support-bot",
		FlowJSON: json.RawMessage(`{"nodes":[]}`),
	}

	suite.mockAgentRepo.On("Create", ctx, mock.AnythingOfType("*models.Agent")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Agent)
		assert.Equal(suite.T(), "DRAFT", created.Status)
		assert.Equal(suite.T(), "0.1.0", created.Version)
		assert.Equal(suite.T(), suite.tenantID, created.TenantID)
		assert.NotEqual(suite.T(), uuid.Nil, created.ID)
	})
	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, mock.AnythingOfType("uuid.UUID")).Return(agent, nil)

	result, err := suite.service.Create(ctx, suite.tenantID, agent)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
}

func (suite *AgentServiceTestSuite) TestCreate_KeepsExplicitVersion() {
	ctx := context.Background()
	agent := &models.Agent{
		Name:     "support-bot",
		Version:  "2.3.0",
		FlowJSON: json.RawMessage(`{"nodes":[]}`),
	}

	suite.mockAgentRepo.On("Create", ctx, mock.AnythingOfType("*models.Agent")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Agent)
		assert.Equal(suite.T(), "2.3.0", created.Version)
		assert.Equal(suite.T(), "DRAFT", created.Status)
	})
	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, mock.AnythingOfType("uuid.UUID")).Return(agent, nil)

	_, err := suite.service.Create(ctx, suite.tenantID, agent)
	assert.NoError(suite.T(), err)
}

func (suite *AgentServiceTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	agentID := uuid.New()
	agent := &models.Agent{
		ID:       agentID,
		TenantID: suite.tenantID,
		Name:     "support-bot",
		Status:   "DRAFT",
	}

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(agent, nil)
	suite.mockAgentRepo.On("Update", ctx, mock.AnythingOfType("*models.Agent")).Return(nil).Run(func(args mock.Arguments) {
		updated := args.Get(1).(*models.Agent)
		assert.Equal(suite.T(), "PUBLISHED", updated.Status)
	})

	result, err := suite.service.UpdateStatus(ctx, suite.tenantID, agentID, "PUBLISHED")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "PUBLISHED", result.Status)
}

func (suite *AgentServiceTestSuite) TestUpdateStatus_NotFound() {
	ctx := context.Background()
	agentID := uuid.New()

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(nil, common.ErrNotFound)

	result, err := suite.service.UpdateStatus(ctx, suite.tenantID, agentID, "PUBLISHED")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *AgentServiceTestSuite) TestDelete_BlockedByConversations() {
	ctx := context.Background()
	agentID := uuid.New()

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(&models.Agent{
		ID:       agentID,
		TenantID: suite.tenantID,
	}, nil)
	suite.mockConversationRepo.On("CountByAgent", ctx, agentID).Return(int64(3), nil)

	err := suite.service.Delete(ctx, suite.tenantID, agentID)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	assert.Contains(suite.T(), err.Error(), "3 dependent conversation")
	suite.mockAgentRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AgentServiceTestSuite) TestDelete_NoConversations() {
	ctx := context.Background()
	agentID := uuid.New()

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(&models.Agent{
		ID:       agentID,
		TenantID: suite.tenantID,
	}, nil)
	suite.mockConversationRepo.On("CountByAgent", ctx, agentID).Return(int64(0), nil)
	suite.mockAgentRepo.On("Delete", ctx, suite.tenantID, agentID).Return(nil)

	err := suite.service.Delete(ctx, suite.tenantID, agentID)
	assert.NoError(suite.T(), err)
}

func (suite *AgentServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	agentID := uuid.New()

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(nil, common.ErrNotFound)

	err := suite.service.Delete(ctx, suite.tenantID, agentID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	suite.mockConversationRepo.AssertNotCalled(suite.T(), "CountByAgent", mock.Anything, mock.Anything)
}
