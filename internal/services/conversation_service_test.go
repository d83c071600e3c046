package services

import (
	"context"
	"testing"
	"time"

	"agenthub/internal/common"
	"agenthub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

type ConversationServiceTestSuite struct {
	suite.Suite
	mockConversationRepo *MockConversationRepository
	mockMessageRepo      *MockMessageRepository
	mockAgentRepo        *MockAgentRepository
	service              ConversationService
	tenantID             uuid.UUID
}

func (suite *ConversationServiceTestSuite) SetupTest() {
	suite.mockConversationRepo = &MockConversationRepository{}
	suite.mockConversationRepo.Test(suite.T())
	suite.mockMessageRepo = &MockMessageRepository{}
	suite.mockMessageRepo.Test(suite.T())
	suite.mockAgentRepo = &MockAgentRepository{}
	suite.mockAgentRepo.Test(suite.T())

	suite.service = NewConversationService(suite.mockConversationRepo, suite.mockMessageRepo, suite.mockAgentRepo)
	suite.tenantID = uuid.New()
}

func (suite *ConversationServiceTestSuite) TearDownTest() {
	suite.mockConversationRepo.AssertExpectations(suite.T())
	suite.mockMessageRepo.AssertExpectations(suite.T())
	suite.mockAgentRepo.AssertExpectations(suite.T())
}

func TestConversationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversationServiceTestSuite))
}

func (suite *ConversationServiceTestSuite) TestCreate_DefaultsChannelAndState() {
	ctx := context.Background()
	agentID := uuid.New()
	conversation := &models.Conversation{AgentID: agentID}

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(&models.Agent{
		ID:       agentID,
		TenantID: suite.tenantID,
		Status:   "PUBLISHED",
	}, nil)
	suite.mockConversationRepo.On("Create", ctx, mock.AnythingOfType("*models.Conversation")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Conversation)
		assert.Equal(suite.T(), "web", created.Channel)
		assert.JSONEq(suite.T(), "{}", string(created.State))
		assert.Equal(suite.T(), suite.tenantID, created.TenantID)
	})
	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, mock.AnythingOfType("uuid.UUID")).Return(conversation, nil)

	result, err := suite.service.Create(ctx, suite.tenantID, conversation)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
}

func (suite *ConversationServiceTestSuite) TestCreate_AgentNotOwnedByTenant() {
	ctx := context.Background()
	agentID := uuid.New()
	conversation := &models.Conversation{AgentID: agentID}

	suite.mockAgentRepo.On("GetByID", ctx, suite.tenantID, agentID).Return(nil, common.ErrNotFound)

	result, err := suite.service.Create(ctx, suite.tenantID, conversation)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
	suite.mockConversationRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ConversationServiceTestSuite) TestGetByID_IncludesMessages() {
	ctx := context.Background()
	conversationID := uuid.New()

	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, conversationID).Return(&models.Conversation{
		ID:       conversationID,
		TenantID: suite.tenantID,
		Channel:  "web",
	}, nil)
	suite.mockMessageRepo.On("ListByConversation", ctx, conversationID).Return([]*models.Message{
		{ID: uuid.New(), ConversationID: conversationID, Role: "USER", Content: "hello"},
		{ID: uuid.New(), ConversationID: conversationID, Role: "ASSISTANT", Content: "hi there"},
	}, nil)

	detail, err := suite.service.GetByID(ctx, suite.tenantID, conversationID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), detail.Messages, 2)
	assert.Equal(suite.T(), "USER", detail.Messages[0].Role)
	assert.Equal(suite.T(), "ASSISTANT", detail.Messages[1].Role)
}

func (suite *ConversationServiceTestSuite) TestCreateMessage_TouchesConversation() {
	ctx := context.Background()
	conversationID := uuid.New()
	message := &models.Message{Role: "USER", Content: "my printer is on fire"}

	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, conversationID).Return(&models.Conversation{
		ID:       conversationID,
		TenantID: suite.tenantID,
	}, nil)
	stamped := time.Now()
	suite.mockMessageRepo.On("Create", ctx, mock.AnythingOfType("*models.Message")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(1).(*models.Message)
		assert.Equal(suite.T(), conversationID, created.ConversationID)
		assert.JSONEq(suite.T(), "{}", string(created.Metadata))
		assert.NotEqual(suite.T(), uuid.Nil, created.ID)
		// The repository scans the database timestamp back onto the row.
		created.CreatedAt = stamped
	})
	suite.mockConversationRepo.On("Touch", ctx, suite.tenantID, conversationID).Return(nil)

	result, err := suite.service.CreateMessage(ctx, suite.tenantID, conversationID, message)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), conversationID, result.ConversationID)
	assert.Equal(suite.T(), stamped, result.CreatedAt)
	assert.False(suite.T(), result.CreatedAt.IsZero())
}

func (suite *ConversationServiceTestSuite) TestCreateMessage_ConversationNotFound() {
	ctx := context.Background()
	conversationID := uuid.New()

	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, conversationID).Return(nil, common.ErrNotFound)

	result, err := suite.service.CreateMessage(ctx, suite.tenantID, conversationID, &models.Message{Role: "USER", Content: "hello"})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ConversationServiceTestSuite) TestListMessages_ChecksOwnership() {
	ctx := context.Background()
	conversationID := uuid.New()

	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, conversationID).Return(nil, common.ErrNotFound)

	messages, err := suite.service.ListMessages(ctx, suite.tenantID, conversationID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), messages)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "ListByConversation", mock.Anything, mock.Anything)
}

func (suite *ConversationServiceTestSuite) TestDelete_ChecksOwnershipFirst() {
	ctx := context.Background()
	conversationID := uuid.New()

	suite.mockConversationRepo.On("GetByID", ctx, suite.tenantID, conversationID).Return(&models.Conversation{
		ID:       conversationID,
		TenantID: suite.tenantID,
	}, nil)
	suite.mockConversationRepo.On("Delete", ctx, suite.tenantID, conversationID).Return(nil)

	err := suite.service.Delete(ctx, suite.tenantID, conversationID)
	assert.NoError(suite.T(), err)
}
