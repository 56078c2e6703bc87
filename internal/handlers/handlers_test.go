package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/handlers"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/config"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testSecret = "handler-test-secret-0123456789"

var registerValidationsOnce sync.Once

// fakeIdempotencyStore keeps responses in a map. A nil entry marks a reserved key.
type fakeIdempotencyStore struct {
	mu    sync.Mutex
	items map[string]*middleware.CachedResponse
}

func (f *fakeIdempotencyStore) Reserve(_ context.Context, key string) (bool, *middleware.CachedResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resp, ok := f.items[key]; ok {
		return false, resp, nil
	}
	f.items[key] = nil
	return true, nil, nil
}

func (f *fakeIdempotencyStore) Save(_ context.Context, key string, resp middleware.CachedResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = &resp
	return nil
}

func (f *fakeIdempotencyStore) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

// stubQuoter converts at a fixed rate unless err is set.
type stubQuoter struct {
	rate decimal.Decimal
	err  error
}

func (q *stubQuoter) Quote(_ context.Context, _, _ string, amount decimal.Decimal) (decimal.Decimal, error) {
	if q.err != nil {
		return decimal.Zero, q.err
	}
	return amount.Mul(q.rate), nil
}

type HandlersTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	quoter *stubQuoter
	router *gin.Engine
	alice  domain.Account
	bob    domain.Account
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		s.Require().True(ok)
		s.Require().NoError(dto.RegisterValidations(v))
	})
}

func (s *HandlersTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.store.SeedReserve(s.ctx, time.Now().UTC())

	s.quoter = &stubQuoter{rate: decimal.RequireFromString("0.9")}
	repos := memory.NewRepositoryProvider(s.store)
	container := services.NewServiceContainer(&repos, services.Collaborators{Quoter: s.quoter, QuoteSource: "stub"}, services.Settings{
		Auth: services.AuthConfig{JWTSecret: testSecret, JWTExpiry: time.Hour, JWTIssuer: "ledger-test"},
	})

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: "ledger-test", IsProduction: true}
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container, handlers.RouteDeps{
		IdempotencyStore: &fakeIdempotencyStore{items: map[string]*middleware.CachedResponse{}},
	})

	s.alice = s.seedHolder("Alice", map[string]int64{"USD": 100})
	s.bob = s.seedHolder("Bob", map[string]int64{"USD": 0})
}

func (s *HandlersTestSuite) seedHolder(name string, balances map[string]int64) domain.Account {
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		HolderName:  name,
		Status:      domain.AccountActive,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	s.Require().NoError(s.store.SaveAccount(s.ctx, acc))
	for currency, balance := range balances {
		s.Require().NoError(s.store.SaveSubAccount(s.ctx, domain.SubAccount{
			SubAccountID: uuid.NewString(),
			AccountID:    acc.AccountID,
			CurrencyCode: currency,
			Balance:      decimal.NewFromInt(balance),
			AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}))
	}
	return acc
}

func (s *HandlersTestSuite) token(accountID string) string {
	token, _, err := utils.GenerateJWT(accountID, testSecret, time.Hour, "ledger-test")
	s.Require().NoError(err)
	return token
}

func (s *HandlersTestSuite) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) balance(accountID, currency string) decimal.Decimal {
	sub, err := s.store.FindSubAccount(s.ctx, accountID, currency)
	s.Require().NoError(err)
	return sub.Balance
}

func (s *HandlersTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestRegisterLoginAndReadAccount() {
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		HolderName: "Carol Jones",
		Username:   "carol",
		Password:   "correct-horse",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "carol", Password: "correct-horse"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	s.NotEmpty(login.Token)

	w = s.do(http.MethodGet, "/api/v1/accounts/me", login.Token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var account dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &account))
	s.Equal(login.AccountID, account.AccountID)
	s.Equal("Carol Jones", account.HolderName)
}

func (s *HandlersTestSuite) TestLogin_WrongPassword() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		HolderName: "Dave", Username: "dave", Password: "correct-horse",
	}).Code)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "dave", Password: "wrong-horse"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestProtectedRouteRequiresToken() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/accounts/me", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/accounts/me", "not-a-jwt", nil).Code)
}

func (s *HandlersTestSuite) TestTransfer_Success() {
	w := s.do(http.MethodPost, "/api/v1/transfers", s.token(s.alice.AccountID), dto.TransferRequest{
		ToAccountID:  s.bob.AccountID,
		Amount:       decimal.RequireFromString("30.25"),
		CurrencyCode: "USD",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var txn dto.TransactionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &txn))
	s.Equal(domain.KindTransfer, txn.Kind)
	s.True(s.balance(s.alice.AccountID, "USD").Equal(decimal.RequireFromString("69.75")))
	s.True(s.balance(s.bob.AccountID, "USD").Equal(decimal.RequireFromString("30.25")))

	w = s.do(http.MethodGet, "/api/v1/transactions/"+txn.TransactionID, s.token(s.bob.AccountID), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestTransfer_Errors() {
	tok := s.token(s.alice.AccountID)
	tests := []struct {
		name string
		req  dto.TransferRequest
		want int
	}{
		{"insufficient funds", dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.NewFromInt(500), CurrencyCode: "USD"}, http.StatusUnprocessableEntity},
		{"unsupported currency", dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.NewFromInt(5), CurrencyCode: "XYZ"}, http.StatusBadRequest},
		{"zero amount", dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.Zero, CurrencyCode: "USD"}, http.StatusBadRequest},
		{"amount below stored precision", dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.RequireFromString("0.000000001"), CurrencyCode: "USD"}, http.StatusBadRequest},
		{"no matching sub-account", dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.NewFromInt(5), CurrencyCode: "EUR"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/v1/transfers", tok, tt.req)
			s.Equal(tt.want, w.Code, w.Body.String())
		})
	}
	s.True(s.balance(s.alice.AccountID, "USD").Equal(decimal.NewFromInt(100)))
}

func (s *HandlersTestSuite) TestTransfer_IdempotentReplay() {
	tok := s.token(s.alice.AccountID)
	req := dto.TransferRequest{ToAccountID: s.bob.AccountID, Amount: decimal.NewFromInt(10), CurrencyCode: "USD"}

	first := s.do(http.MethodPost, "/api/v1/transfers", tok, req, middleware.IdempotencyHeader, "key-1")
	s.Require().Equal(http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/api/v1/transfers", tok, req, middleware.IdempotencyHeader, "key-1")
	s.Equal(http.StatusCreated, second.Code)
	s.Equal("true", second.Header().Get("X-Idempotency-Hit"))
	s.JSONEq(first.Body.String(), second.Body.String())

	s.True(s.balance(s.alice.AccountID, "USD").Equal(decimal.NewFromInt(90)))
}

func (s *HandlersTestSuite) TestConvert_UnavailableRateHidesCause() {
	s.Require().NoError(s.store.SaveSubAccount(s.ctx, domain.SubAccount{
		SubAccountID: uuid.NewString(),
		AccountID:    s.alice.AccountID,
		CurrencyCode: "EUR",
		Balance:      decimal.Zero,
	}))
	tok := s.token(s.alice.AccountID)
	req := dto.ConversionRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Amount: decimal.NewFromInt(10)}

	w := s.do(http.MethodPost, "/api/v1/conversions", tok, req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.True(s.balance(s.alice.AccountID, "EUR").Equal(decimal.NewFromInt(9)))

	s.quoter.err = fmt.Errorf("%w: Get \"https://rates.example/v6/SECRET-API-KEY/pair\": timeout", apperrors.ErrRateUnavailable)
	w = s.do(http.MethodPost, "/api/v1/conversions", tok, req)
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.NotContains(w.Body.String(), "SECRET-API-KEY")
	s.JSONEq(`{"error":"exchange rate unavailable"}`, w.Body.String())
	s.True(s.balance(s.alice.AccountID, "USD").Equal(decimal.NewFromInt(90)))
}

func (s *HandlersTestSuite) TestAdminRoutesRefuseHolders() {
	w := s.do(http.MethodGet, "/api/v1/admin/accounts", s.token(s.alice.AccountID), nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/accounts", s.token(domain.ReserveAccountID), nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestTopUpStageAndApprove() {
	admin := s.token(domain.ReserveAccountID)
	w := s.do(http.MethodPost, "/api/v1/admin/fund", admin, dto.FundRequest{
		AccountID: domain.ReserveAccountID, Amount: decimal.NewFromInt(1000), CurrencyCode: "USD",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/topups", s.token(s.bob.AccountID), dto.StageTopUpRequest{
		Amount: decimal.NewFromInt(50), CurrencyCode: "USD",
	})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())
	var pending dto.PendingTopUpResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	s.True(s.balance(s.bob.AccountID, "USD").IsZero())

	w = s.do(http.MethodPost, "/api/v1/admin/topups/"+pending.PendingTopUpID+"/approve", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(s.balance(s.bob.AccountID, "USD").Equal(decimal.NewFromInt(50)))
	s.True(s.balance(domain.ReserveAccountID, "USD").Equal(decimal.NewFromInt(950)))

	w = s.do(http.MethodPost, "/api/v1/admin/topups/"+pending.PendingTopUpID+"/approve", admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestScheduledTransferRunDue() {
	w := s.do(http.MethodPost, "/api/v1/scheduled-transfers", s.token(s.alice.AccountID), dto.CreateScheduledTransferRequest{
		ToAccountID:   s.bob.AccountID,
		Amount:        decimal.NewFromInt(20),
		CurrencyCode:  "USD",
		ScheduledDate: "2030-01-31",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/admin/scheduled-transfers/run-due", s.token(domain.ReserveAccountID), dto.RunDueRequest{Date: "2030-01-31"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var report domain.BatchReport
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	s.Equal(1, report.Due)
	s.Equal(1, report.Succeeded)
	s.Require().Len(report.Outcomes, 1)
	s.Require().NotNil(report.Outcomes[0].NextScheduledDate)
	s.Equal("2030-02-28", report.Outcomes[0].NextScheduledDate.Format(time.DateOnly))
	s.True(s.balance(s.bob.AccountID, "USD").Equal(decimal.NewFromInt(20)))
}

func (s *HandlersTestSuite) TestBalance() {
	w := s.do(http.MethodGet, "/api/v1/accounts/me/balances/usd", s.token(s.alice.AccountID), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res dto.BalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.True(res.Balance.Equal(decimal.NewFromInt(100)))

	w = s.do(http.MethodGet, "/api/v1/accounts/me/balances/GBP", s.token(s.alice.AccountID), nil)
	s.Equal(http.StatusNotFound, w.Code)
}
