package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"agenthub/internal/common"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHeader identifies the tenant on every protected route.
const TenantHeader = "X-Tenant-Id"

// TenantResolver guards protected route groups. It reads the tenant header,
// resolves it against the tenant store (one lookup per request, never
// cached) and binds the tenant record into the request context. Missing
// header is a 400; a header that does not resolve is a 403 rather than a
// 404, because the caller supplied an identifier that is not theirs to use.
func TenantResolver(tenantRepo repositories.TenantRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(TenantHeader))
			if header == "" {
				return echo.NewHTTPError(http.StatusBadRequest, common.ErrMissingTenantHeader.Error())
			}

			tenantID, err := uuid.Parse(header)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
			}

			tenant, err := tenantRepo.GetByID(c.Request().Context(), tenantID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, common.ErrTenantNotFound.Error())
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve tenant")
			}

			ctx := context.WithValue(c.Request().Context(), common.TenantIDKey, tenant.ID)
			ctx = context.WithValue(ctx, common.TenantKey, tenant)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
