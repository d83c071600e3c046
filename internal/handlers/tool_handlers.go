package handlers

import (
	"errors"
	"net/http"

	"agenthub/internal/common"
	"agenthub/internal/services"

	"github.com/labstack/echo/v4"
)

// ToolHandlers handles tool-related HTTP requests
type ToolHandlers struct {
	toolService services.ToolService
}

func NewToolHandlers(toolService services.ToolService) *ToolHandlers {
	return &ToolHandlers{toolService: toolService}
}

// CreateTool handles registering a new tool integration
func (h *ToolHandlers) CreateTool(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.CreateToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateToolType(req.Type); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	tool, err := h.toolService.Create(ctx, tenantID, &req)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Tool with this name already exists for this tenant")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create tool")
	}

	return c.JSON(http.StatusCreated, tool)
}

// ListToolsRequest represents query parameters for listing tools
type ListToolsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListTools handles getting a list of tools; auth configs are never included
func (h *ToolHandlers) ListTools(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListToolsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	tools, err := h.toolService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list tools")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tools":  tools,
		"limit":  limit,
		"offset": offset,
	})
}

// GetTool handles getting tool details by ID
func (h *ToolHandlers) GetTool(c echo.Context) error {
	ctx := c.Request().Context()

	toolID, err := common.ValidateUUID(c.Param("id"), "tool ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	tool, err := h.toolService.GetByID(ctx, tenantID, toolID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch tool")
	}

	return c.JSON(http.StatusOK, tool)
}

// UpdateTool handles updating tool details
func (h *ToolHandlers) UpdateTool(c echo.Context) error {
	ctx := c.Request().Context()

	toolID, err := common.ValidateUUID(c.Param("id"), "tool ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req services.UpdateToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if req.Type != nil {
		if err := common.ValidateToolType(*req.Type); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	tool, err := h.toolService.Update(ctx, tenantID, toolID, &req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		if errors.Is(err, common.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Tool with this name already exists for this tenant")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update tool")
	}

	return c.JSON(http.StatusOK, tool)
}

// DeleteTool handles deleting a tool
func (h *ToolHandlers) DeleteTool(c echo.Context) error {
	ctx := c.Request().Context()

	toolID, err := common.ValidateUUID(c.Param("id"), "tool ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	if err := h.toolService.Delete(ctx, tenantID, toolID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete tool")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tool deleted successfully",
	})
}

// TestToolRequest represents the tool invocation test payload
type TestToolRequest struct {
	Input map[string]interface{} `json:"input"`
}

// TestTool handles a dry-run invocation of a tool
func (h *ToolHandlers) TestTool(c echo.Context) error {
	ctx := c.Request().Context()

	toolID, err := common.ValidateUUID(c.Param("id"), "tool ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req TestToolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	result, err := h.toolService.Test(ctx, tenantID, toolID, req.Input)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tool not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to test tool")
	}

	return c.JSON(http.StatusOK, result)
}
