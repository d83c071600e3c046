package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"agenthub/internal/common"
	"agenthub/internal/models"
	"agenthub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ConversationHandlers handles conversation-related HTTP requests
type ConversationHandlers struct {
	conversationService services.ConversationService
}

func NewConversationHandlers(conversationService services.ConversationService) *ConversationHandlers {
	return &ConversationHandlers{conversationService: conversationService}
}

// CreateConversationRequest represents the conversation creation request payload
type CreateConversationRequest struct {
	AgentID string          `json:"agent_id"`
	UserID  *string         `json:"user_id"`
	Channel string          `json:"channel"`
	State   json.RawMessage `json:"state"`
}

// CreateConversation handles starting a new conversation against an agent
func (h *ConversationHandlers) CreateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	agentID, err := common.ValidateUUID(req.AgentID, "agent ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var userID *uuid.UUID
	if req.UserID != nil && *req.UserID != "" {
		parsed, err := common.ValidateUUID(*req.UserID, "user ID")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		userID = &parsed
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	conversation := &models.Conversation{
		AgentID: agentID,
		UserID:  userID,
		Channel: req.Channel,
		State:   req.State,
	}

	created, err := h.conversationService.Create(ctx, tenantID, conversation)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agent not found")
		}
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Conversation references a missing agent or user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create conversation")
	}

	return c.JSON(http.StatusCreated, created)
}

// ListConversationsRequest represents query parameters for listing conversations
type ListConversationsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListConversations handles getting a list of conversations for the resolved tenant
func (h *ConversationHandlers) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListConversationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	conversations, err := h.conversationService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list conversations")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetConversation handles getting conversation details with its message history
func (h *ConversationHandlers) GetConversation(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID, err := common.ValidateUUID(c.Param("id"), "conversation ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	detail, err := h.conversationService.GetByID(ctx, tenantID, conversationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch conversation")
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdateConversationRequest represents the conversation update request payload
type UpdateConversationRequest struct {
	Channel *string         `json:"channel"`
	State   json.RawMessage `json:"state"`
}

// UpdateConversation handles updating conversation channel or state
func (h *ConversationHandlers) UpdateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID, err := common.ValidateUUID(c.Param("id"), "conversation ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	detail, err := h.conversationService.GetByID(ctx, tenantID, conversationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch conversation")
	}

	conversation := detail.Conversation
	if req.Channel != nil {
		conversation.Channel = *req.Channel
	}
	if req.State != nil {
		conversation.State = req.State
	}

	updated, err := h.conversationService.Update(ctx, tenantID, &conversation)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update conversation")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteConversation handles deleting a conversation and its messages
func (h *ConversationHandlers) DeleteConversation(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID, err := common.ValidateUUID(c.Param("id"), "conversation ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	if err := h.conversationService.Delete(ctx, tenantID, conversationID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete conversation")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Conversation deleted successfully",
	})
}

// CreateMessageRequest represents the message append request payload
type CreateMessageRequest struct {
	Role     string          `json:"role"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
}

// CreateMessage handles appending a message to a conversation
func (h *ConversationHandlers) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID, err := common.ValidateUUID(c.Param("id"), "conversation ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateMessageRole(req.Role); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.Content, "content"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	message := &models.Message{
		Role:     req.Role,
		Content:  req.Content,
		Metadata: req.Metadata,
	}

	created, err := h.conversationService.CreateMessage(ctx, tenantID, conversationID, message)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create message")
	}

	return c.JSON(http.StatusCreated, created)
}

// ListMessages handles getting a conversation's message history in order
func (h *ConversationHandlers) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	conversationID, err := common.ValidateUUID(c.Param("id"), "conversation ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	messages, err := h.conversationService.ListMessages(ctx, tenantID, conversationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list messages")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}
