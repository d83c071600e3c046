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

// DocumentHandlers handles knowledge document HTTP requests
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

// CreateDocumentRequest represents the document registration request payload
type CreateDocumentRequest struct {
	Source   string          `json:"source"`
	URI      string          `json:"uri"`
	Title    string          `json:"title"`
	Metadata json.RawMessage `json:"metadata"`
}

// CreateDocument handles registering a knowledge document
func (h *DocumentHandlers) CreateDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateDocumentSource(req.Source); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.URI, "uri"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	document := &models.Document{
		Source:   req.Source,
		URI:      req.URI,
		Title:    req.Title,
		Metadata: req.Metadata,
	}

	created, err := h.documentService.Create(ctx, tenantID, document)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create document")
	}

	return c.JSON(http.StatusCreated, created)
}

// ListDocumentsRequest represents query parameters for listing documents
type ListDocumentsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListDocuments handles getting a list of documents for the resolved tenant
func (h *DocumentHandlers) ListDocuments(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListDocumentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	documents, err := h.documentService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"documents": documents,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetDocument handles getting document details by ID
func (h *DocumentHandlers) GetDocument(c echo.Context) error {
	ctx := c.Request().Context()

	documentID, err := common.ValidateUUID(c.Param("id"), "document ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	document, err := h.documentService.GetByID(ctx, tenantID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch document")
	}

	return c.JSON(http.StatusOK, document)
}

// UpdateDocumentRequest represents the document update request payload
type UpdateDocumentRequest struct {
	Title    *string         `json:"title"`
	Metadata json.RawMessage `json:"metadata"`
}

// UpdateDocument handles updating document title or metadata
func (h *DocumentHandlers) UpdateDocument(c echo.Context) error {
	ctx := c.Request().Context()

	documentID, err := common.ValidateUUID(c.Param("id"), "document ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Title != nil {
		if err := common.ValidateRequiredString(*req.Title, "title"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	document, err := h.documentService.GetByID(ctx, tenantID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch document")
	}

	if req.Title != nil {
		document.Title = *req.Title
	}
	if req.Metadata != nil {
		document.Metadata = req.Metadata
	}

	updated, err := h.documentService.Update(ctx, tenantID, document)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update document")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteDocument handles deleting a document and its stored blob
func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	ctx := c.Request().Context()

	documentID, err := common.ValidateUUID(c.Param("id"), "document ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	if err := h.documentService.Delete(ctx, tenantID, documentID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete document")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Document deleted successfully",
	})
}

// DownloadDocument handles resolving a short-lived download URL for a document
func (h *DocumentHandlers) DownloadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	documentID, err := common.ValidateUUID(c.Param("id"), "document ID")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
	}

	url, err := h.documentService.DownloadURL(ctx, tenantID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate download URL")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": url,
	})
}
