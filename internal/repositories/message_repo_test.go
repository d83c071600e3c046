package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"agenthub/internal/common"
	"agenthub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MessageRepoTestSuite struct {
	suite.Suite
	mock           pgxmock.PgxPoolIface
	repo           MessageRepository
	conversationID uuid.UUID
	context        context.Context
}

func (suite *MessageRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewMessageRepository(mock)
	suite.conversationID = uuid.New()
	suite.context = context.Background()
}

func (suite *MessageRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMessageRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepoTestSuite))
}

func (suite *MessageRepoTestSuite) TestCreate_PopulatesCreatedAt() {
	now := time.Now()
	message := &models.Message{
		ID:             uuid.New(),
		ConversationID: suite.conversationID,
		Role:           "USER",
		Content:        "hello",
		Metadata:       json.RawMessage("{}"),
	}

	suite.mock.ExpectQuery(`
			INSERT INTO messages \(id, conversation_id, role, content, metadata, created_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\)\)
			RETURNING created_at
		`).WithArgs(message.ID, message.ConversationID, message.Role, message.Content, message.Metadata).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	err := suite.repo.Create(suite.context, message)
	assert.NoError(suite.T(), err)
	// The database stamps the timestamp; callers must see it on the
	// returned message, not a zero time.
	assert.Equal(suite.T(), now, message.CreatedAt)
	assert.False(suite.T(), message.CreatedAt.IsZero())
}

func (suite *MessageRepoTestSuite) TestCreate_MissingConversation() {
	message := &models.Message{
		ID:             uuid.New(),
		ConversationID: suite.conversationID,
		Role:           "USER",
		Content:        "hello",
		Metadata:       json.RawMessage("{}"),
	}

	suite.mock.ExpectQuery(`
			INSERT INTO messages \(id, conversation_id, role, content, metadata, created_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\)\)
			RETURNING created_at
		`).WithArgs(message.ID, message.ConversationID, message.Role, message.Content, message.Metadata).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "messages_conversation_id_fkey"})

	err := suite.repo.Create(suite.context, message)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *MessageRepoTestSuite) TestListByConversation_CreationOrder() {
	first := time.Now().Add(-time.Minute)
	second := time.Now()
	rows := pgxmock.NewRows([]string{"id", "conversation_id", "role", "content", "metadata", "created_at"}).
		AddRow(uuid.New(), suite.conversationID, "USER", "hello", json.RawMessage("{}"), first).
		AddRow(uuid.New(), suite.conversationID, "ASSISTANT", "hi there", json.RawMessage("{}"), second)

	suite.mock.ExpectQuery(`
			SELECT id, conversation_id, role, content, metadata, created_at
			FROM messages
			WHERE conversation_id = \$1
			ORDER BY created_at ASC
		`).WithArgs(suite.conversationID).
		WillReturnRows(rows)

	messages, err := suite.repo.ListByConversation(suite.context, suite.conversationID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), messages, 2)
	assert.Equal(suite.T(), "USER", messages[0].Role)
	assert.True(suite.T(), messages[0].CreatedAt.Before(messages[1].CreatedAt))
}
