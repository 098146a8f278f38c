package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/handlers"
	"github.com/billingup/billingup-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PartyService ---
type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, userID, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}
func (m *MockPartyService) GetPartySummary(ctx context.Context, userID string) (ledger.BookSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ledger.BookSummary), args.Error(1)
}
func (m *MockPartyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockPartyService) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	args := m.Called(ctx, partyID, userID)
	return args.Error(0)
}
func (m *MockPartyService) ImportParties(ctx context.Context, userID string, r io.Reader) (*dto.ImportPartiesResult, error) {
	args := m.Called(ctx, userID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportPartiesResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PartySvcFacade = (*MockPartyService)(nil)

// --- Mock AdjustmentService ---
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) CreateAdjustment(ctx context.Context, partyID string, req dto.CreateAdjustmentRequest, userID string) (*domain.BalanceAdjustment, error) {
	args := m.Called(ctx, partyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAdjustment), args.Error(1)
}
func (m *MockAdjustmentService) ListAdjustments(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAdjustment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AdjustmentSvcFacade = (*MockAdjustmentService)(nil)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GetPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) (*dto.StatementResponse, error) {
	args := m.Called(ctx, partyID, userID, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatementResponse), args.Error(1)
}
func (m *MockStatementService) ExportPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time, w io.Writer) error {
	args := m.Called(ctx, partyID, userID, dateFrom, dateTo, w)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Test Suite ---
type PartyHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockPartyService      *MockPartyService
	mockAdjustmentService *MockAdjustmentService
	mockStatementService  *MockStatementService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PartyHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "billingup-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PartyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPartyService = new(MockPartyService)
	suite.mockAdjustmentService = new(MockAdjustmentService)
	suite.mockStatementService = new(MockStatementService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPartyRoutes(v1, suite.mockPartyService, suite.mockAdjustmentService, suite.mockStatementService)
}

func (suite *PartyHandlerTestSuite) doRequest(method, url, userID string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PartyHandlerTestSuite) TestCreateParty_Success() {
	userID := uuid.NewString()
	created := &domain.Party{
		PartyID:        uuid.NewString(),
		UserID:         userID,
		Name:           "Acme Traders",
		PartyType:      domain.PartyTypeCustomer,
		OpeningBalance: decimal.NewFromInt(1500),
		CurrentBalance: decimal.NewFromInt(1500),
		IsActive:       true,
	}

	suite.mockPartyService.On("CreateParty",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.CreatePartyRequest) bool {
			return req.Name == "Acme Traders" && req.Type == domain.PartyTypeCustomer
		}),
		userID,
	).Return(created, nil).Once()

	body := []byte(`{"name":"Acme Traders","type":"customer","openingBalance":1500}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/parties", userID, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PartyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.PartyID, resp.PartyID)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(1500)))
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestCreateParty_DuplicateName() {
	userID := uuid.NewString()
	suite.mockPartyService.On("CreateParty",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreatePartyRequest"),
		userID,
	).Return(nil, fmt.Errorf(`party %q already exists: %w`, "Acme Traders", apperrors.ErrDuplicate)).Once()

	body := []byte(`{"name":"Acme Traders","type":"customer"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/parties", userID, body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestCreateParty_InvalidPartyTypeRejectedByBinding() {
	userID := uuid.NewString()

	body := []byte(`{"name":"Acme Traders","type":"alien"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/parties", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPartyService.AssertNotCalled(suite.T(), "CreateParty")
}

func (suite *PartyHandlerTestSuite) TestCreateParty_RequiresAuth() {
	body := []byte(`{"name":"Acme Traders","type":"customer"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/parties", bytes.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPartyService.AssertNotCalled(suite.T(), "CreateParty")
}

func (suite *PartyHandlerTestSuite) TestGetParty_NotFound() {
	userID := uuid.NewString()
	partyID := uuid.NewString()
	suite.mockPartyService.On("GetPartyByID",
		mock.AnythingOfType("*context.valueCtx"), partyID, userID,
	).Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/parties/"+partyID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestListParties_PassesQueryParams() {
	userID := uuid.NewString()
	parties := []domain.Party{
		{PartyID: uuid.NewString(), Name: "Acme Traders", PartyType: domain.PartyTypeCustomer, IsActive: true},
		{PartyID: uuid.NewString(), Name: "Bharat Supplies", PartyType: domain.PartyTypeVendor, IsActive: false},
	}
	suite.mockPartyService.On("ListParties",
		mock.AnythingOfType("*context.valueCtx"), userID, true, 50, 10,
	).Return(parties, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/parties?limit=50&offset=10&includeInactive=true", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListPartiesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Parties, 2)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestGetPartySummary() {
	userID := uuid.NewString()
	summary := ledger.BookSummary{
		TotalReceivable: decimal.NewFromInt(300),
		TotalPayable:    decimal.NewFromInt(120),
		PartyCount:      3,
	}
	suite.mockPartyService.On("GetPartySummary",
		mock.AnythingOfType("*context.valueCtx"), userID,
	).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/parties/summary", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PartySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.TotalReceivable.Equal(decimal.NewFromInt(300)))
	suite.True(resp.TotalPayable.Equal(decimal.NewFromInt(120)))
	suite.Equal(3, resp.PartyCount)
}

func (suite *PartyHandlerTestSuite) TestDeactivateParty_NoContent() {
	userID := uuid.NewString()
	partyID := uuid.NewString()
	suite.mockPartyService.On("DeactivateParty",
		mock.AnythingOfType("*context.valueCtx"), partyID, userID,
	).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/parties/"+partyID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPartyService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestCreateAdjustment_Success() {
	userID := uuid.NewString()
	partyID := uuid.NewString()
	adjustment := &domain.BalanceAdjustment{
		AdjustmentID:     uuid.NewString(),
		UserID:           userID,
		PartyID:          partyID,
		AdjustmentType:   domain.AdjustCurrentBalance,
		PreviousBalance:  decimal.NewFromInt(100),
		NewBalance:       decimal.NewFromInt(250),
		AdjustmentAmount: decimal.NewFromInt(150),
	}
	suite.mockAdjustmentService.On("CreateAdjustment",
		mock.AnythingOfType("*context.valueCtx"),
		partyID,
		mock.MatchedBy(func(req dto.CreateAdjustmentRequest) bool {
			return req.Type == domain.AdjustCurrentBalance && req.NewBalance.Equal(decimal.NewFromInt(250))
		}),
		userID,
	).Return(adjustment, nil).Once()

	body := []byte(`{"type":"current_balance","newBalance":250,"reason":"stock count correction"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/parties/"+partyID+"/adjustments", userID, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AdjustmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(adjustment.AdjustmentID, resp.AdjustmentID)
	suite.mockAdjustmentService.AssertExpectations(suite.T())
}

func (suite *PartyHandlerTestSuite) TestGetStatement_ParsesDateWindow() {
	userID := uuid.NewString()
	partyID := uuid.NewString()
	statement := &dto.StatementResponse{
		OpeningBalance:       decimal.NewFromInt(1000),
		ClosingBalance:       decimal.NewFromInt(1300),
		ConsistentWithStored: true,
	}
	suite.mockStatementService.On("GetPartyStatement",
		mock.AnythingOfType("*context.valueCtx"),
		partyID,
		userID,
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Format("2006-01-02") == "2026-01-01"
		}),
		mock.MatchedBy(func(to *time.Time) bool {
			return to != nil && to.Format("2006-01-02") == "2026-03-31"
		}),
	).Return(statement, nil).Once()

	url := "/api/v1/parties/" + partyID + "/statement?dateFrom=2026-01-01&dateTo=2026-03-31"
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(1300)))
	suite.mockStatementService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPartyHandler(t *testing.T) {
	suite.Run(t, new(PartyHandlerTestSuite))
}
