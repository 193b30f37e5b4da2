package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, error)
	logoutFn   func(ctx context.Context, claims ports.TokenClaims) error
	profileFn  func(ctx context.Context, userID uint) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) IssueToken(uint) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuthService) VerifyToken(context.Context, string) (*ports.TokenClaims, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Logout(ctx context.Context, claims ports.TokenClaims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubAuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

type stubAccountService struct {
	createFn func(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error)
	updateFn func(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, id uint) (*domain.Account, error)
	deleteFn func(ctx context.Context, actorID, id uint) error
	listFn   func(ctx context.Context, in ports.ListAccountsInput) (*ports.ListAccountsResult, error)
}

func (s *stubAccountService) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, in)
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, in)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id uint) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, actorID, id uint) error {
	return s.deleteFn(ctx, actorID, id)
}

func (s *stubAccountService) ListAccounts(ctx context.Context, in ports.ListAccountsInput) (*ports.ListAccountsResult, error) {
	return s.listFn(ctx, in)
}

type stubUserService struct {
	updateRoleFn func(ctx context.Context, id uint, role string) error
}

func (s *stubUserService) UpdateRole(ctx context.Context, id uint, role string) error {
	return s.updateRoleFn(ctx, id, role)
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newRequest builds an echo context for a JSON request. userID 0 leaves the
// context unauthenticated; params are name/value pairs for path parameters.
func newRequest(method, target, body string, userID uint, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != 0 {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextClaims, ports.TokenClaims{UserID: userID, TokenID: "jti-test"})
	}
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func expectStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}
