package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenthub/internal/common"
	"agenthub/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Counts(ctx context.Context, id uuid.UUID) (*models.TenantCounts, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantCounts), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.TenantWithCounts, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.TenantWithCounts), args.Error(1)
}

type TenantResolverTestSuite struct {
	suite.Suite
	mockRepo *MockTenantRepository
	echo     *echo.Echo
}

func (suite *TenantResolverTestSuite) SetupTest() {
	suite.mockRepo = &MockTenantRepository{}
	suite.mockRepo.Test(suite.T())
	suite.echo = echo.New()
}

func (suite *TenantResolverTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTenantResolverTestSuite(t *testing.T) {
	suite.Run(t, new(TenantResolverTestSuite))
}

// invoke runs the resolver over a no-op handler and reports the handler's
// request context so tests can inspect what was bound.
func (suite *TenantResolverTestSuite) invoke(header string) (*httptest.ResponseRecorder, context.Context, error) {
	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	if header != "" {
		req.Header.Set(TenantHeader, header)
	}
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	var handlerCtx context.Context
	handler := TenantResolver(suite.mockRepo)(func(c echo.Context) error {
		handlerCtx = c.Request().Context()
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	return rec, handlerCtx, err
}

func (suite *TenantResolverTestSuite) TestMissingHeader() {
	_, _, err := suite.invoke("")

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}

func (suite *TenantResolverTestSuite) TestUnparsableHeader() {
	_, _, err := suite.invoke("not-a-uuid")

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusForbidden, httpErr.Code)
}

func (suite *TenantResolverTestSuite) TestUnknownTenant() {
	tenantID := uuid.New()
	suite.mockRepo.On("GetByID", mock.Anything, tenantID).Return(nil, common.ErrNotFound)

	_, _, err := suite.invoke(tenantID.String())

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusForbidden, httpErr.Code)
}

func (suite *TenantResolverTestSuite) TestStoreFailure() {
	tenantID := uuid.New()
	suite.mockRepo.On("GetByID", mock.Anything, tenantID).Return(nil, errors.New("connection refused"))

	_, _, err := suite.invoke(tenantID.String())

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusInternalServerError, httpErr.Code)
}

func (suite *TenantResolverTestSuite) TestResolvedTenantBoundToContext() {
	tenant := &models.Tenant{
		ID:   uuid.New(),
		Name: "Acme",
		Plan: "PRO",
	}
	suite.mockRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil).Once()

	rec, handlerCtx, err := suite.invoke(tenant.ID.String())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	boundID, ok := common.GetTenantIDFromContext(handlerCtx)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), tenant.ID, boundID)

	bound, ok := common.GetTenantFromContext(handlerCtx)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), tenant, bound)
}

func (suite *TenantResolverTestSuite) TestSingleLookupPerRequest() {
	tenant := &models.Tenant{ID: uuid.New(), Name: "Acme", Plan: "FREE"}
	suite.mockRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil).Twice()

	// Two requests mean two lookups; nothing is cached in between.
	_, _, err := suite.invoke(tenant.ID.String())
	assert.NoError(suite.T(), err)
	_, _, err = suite.invoke(tenant.ID.String())
	assert.NoError(suite.T(), err)

	suite.mockRepo.AssertNumberOfCalls(suite.T(), "GetByID", 2)
}

func (suite *TenantResolverTestSuite) TestHeaderWhitespaceTrimmed() {
	tenant := &models.Tenant{ID: uuid.New(), Name: "Acme", Plan: "FREE"}
	suite.mockRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)

	rec, _, err := suite.invoke("  " + tenant.ID.String() + "  ")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}
