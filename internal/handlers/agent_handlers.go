package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"agenthub/internal/common"
	"agenthub/internal/models"
	"agenthub/internal/services"

	"github.com/labstack/echo/v4"
)

// AgentHandlers handles agent-related HTTP requests
type AgentHandlers struct {
	agentService services.AgentService
}

func NewAgentHandlers(agentService services.AgentService) *AgentHandlers {
	return &AgentHandlers{agentService: agentService}
}

// CreateAgentRequest represents the agent creation request payload
type CreateAgentRequest struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	FlowJSON json.RawMessage `json:"flow_json"`
}

// CreateAgent handles registering a new agent workflow
func (h *AgentHandlers) CreateAgent(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateAgentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.FlowJSON) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "flow_json is required")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	agent := &models.Agent{
		Name:     req.Name,
		Version:  req.Version,
		FlowJSON: req.FlowJSON,
	}

	created, err := h.agentService.Create(ctx, tenantID, agent)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Agent with this name already exists for this tenant")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create agent")
	}

	return c.JSON(http.StatusCreated, created)
}

// ListAgentsRequest represents query parameters for listing agents
type ListAgentsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListAgents handles getting a list of agents for the resolved tenant
func (h *AgentHandlers) ListAgents(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListAgentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	agents, err := h.agentService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list agents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"agents": agents,
		"limit":  limit,
		"offset": offset,
	})
}

// GetAgent handles getting agent details by ID
func (h *AgentHandlers) GetAgent(c echo.Context) error {
	ctx := c.Request().Context()

	agentID, err := common.ValidateUUID(c.Param("id"), "agent ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	agent, err := h.agentService.GetByID(ctx, tenantID, agentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agent not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch agent")
	}

	return c.JSON(http.StatusOK, agent)
}

// UpdateAgentRequest represents the agent update request payload
type UpdateAgentRequest struct {
	Name     *string         `json:"name"`
	Version  *string         `json:"version"`
	FlowJSON json.RawMessage `json:"flow_json"`
}

// UpdateAgent handles updating agent details
func (h *AgentHandlers) UpdateAgent(c echo.Context) error {
	ctx := c.Request().Context()

	agentID, err := common.ValidateUUID(c.Param("id"), "agent ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateAgentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	agent, err := h.agentService.GetByID(ctx, tenantID, agentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agent not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch agent")
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Version != nil {
		agent.Version = *req.Version
	}
	if req.FlowJSON != nil {
		agent.FlowJSON = req.FlowJSON
	}

	updated, err := h.agentService.Update(ctx, tenantID, agent)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Agent with this name already exists for this tenant")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update agent")
	}

	return c.JSON(http.StatusOK, updated)
}

// UpdateAgentStatusRequest represents the agent status change payload
type UpdateAgentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateAgentStatus handles agent lifecycle transitions
func (h *AgentHandlers) UpdateAgentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	agentID, err := common.ValidateUUID(c.Param("id"), "agent ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateAgentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateAgentStatus(req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	agent, err := h.agentService.UpdateStatus(ctx, tenantID, agentID, req.Status)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agent not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update agent status")
	}

	return c.JSON(http.StatusOK, agent)
}

// DeleteAgent handles deleting an agent; blocked while conversations depend on it
func (h *AgentHandlers) DeleteAgent(c echo.Context) error {
	ctx := c.Request().Context()

	agentID, err := common.ValidateUUID(c.Param("id"), "agent ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	if err := h.agentService.Delete(ctx, tenantID, agentID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Agent not found")
		}
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Cannot delete agent with dependent conversations")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete agent")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Agent deleted successfully",
	})
}
