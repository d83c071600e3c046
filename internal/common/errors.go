package common

import "errors"

// Error taxonomy shared by repositories, services and handlers. Handlers
// translate these to HTTP status codes exactly once; repositories translate
// store signals (no rows, unique violations) into them so services never see
// driver errors for expected conditions.
var (
	// ErrMissingTenantHeader: protected route called without X-Tenant-Id. 400.
	ErrMissingTenantHeader = errors.New("X-Tenant-Id header is required")

	// ErrTenantNotFound: a tenant identifier was supplied but does not
	// resolve to an accessible tenant. Deliberately a forbidden-class
	// error, not a 404. 403.
	ErrTenantNotFound = errors.New("tenant not found or not accessible")

	// ErrNotFound covers both "no such row" and "row owned by another
	// tenant" so callers cannot probe for other tenants' data. 404.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict: unique-key violation or dependency-blocked delete. 409.
	ErrConflict = errors.New("resource conflict")
)
