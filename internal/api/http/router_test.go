package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/spec-kit/fraud-desk/internal/api/http/handlers"
	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/config"
	"github.com/spec-kit/fraud-desk/internal/currency"
	"github.com/spec-kit/fraud-desk/internal/events"
	"github.com/spec-kit/fraud-desk/internal/observability"
	"github.com/spec-kit/fraud-desk/internal/repository"
	"github.com/spec-kit/fraud-desk/internal/service"
)

type fixedCurrencies map[string]string

func (f fixedCurrencies) Table(context.Context) map[string]string { return f }

func (f fixedCurrencies) List(context.Context) ([]currency.Currency, error) {
	return []currency.Currency{{Code: "EUR", Name: f["EUR"]}, {Code: "USD", Name: f["USD"]}}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type RouterSuite struct {
	suite.Suite
	app     *fiber.App
	metrics *observability.Metrics
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	s.metrics = metrics
	currencies := fixedCurrencies{"USD": "United States Dollar", "EUR": "Euro"}

	complaints := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  repository.NewInMemoryComplaints(),
		TransitionRepo: repository.NewInMemoryTransitions(),
		Currencies:     currencies,
		Dispatcher:     events.NewInMemoryDispatcher(),
		Metrics:        metrics,
		Logger:         logger,
	})
	authService, err := service.NewAuthService(config.AuthConfig{
		JWTSecret:         "secret",
		SessionTTLMinutes: 60,
		BcryptCost:        4,
		OperatorUsername:  "admin",
		OperatorPassword:  "1234",
	}, auth.NewMemoryRevocations(), logger)
	s.Require().NoError(err)

	s.app = fiber.New()
	RegisterMiddlewares(s.app, logger, metrics, 5*time.Second)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("fraud-desk", "test"),
		Complaints:     handlers.NewComplaintsHandler(complaints),
		Auth:           handlers.NewAuthHandler(authService),
		Currencies:     handlers.NewCurrencyHandler(currencies),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), authService.Revocations()),
		IntakeLimiter:  NewRateLimiter(60, 3),
		LoginLimiter:   NewRateLimiter(60, 10),
		Metrics:        metrics,
	})
}

func (s *RouterSuite) do(method, path, token, body string) (int, envelope, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env, raw
}

func (s *RouterSuite) login() string {
	status, env, _ := s.do(http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"1234"}`)
	s.Require().Equal(http.StatusOK, status)
	var session struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &session))
	return session.Token
}

const validSubmission = `{"name":"John","email":"john@x.com","phone":"","country":"US","scam_type":"crypto",
	"description":"lost money to scam","amount_lost":"","currency":"USD"}`

func (s *RouterSuite) TestPublicSubmission() {
	status, env, _ := s.do(http.MethodPost, "/api/complaints", "", validSubmission)
	s.Require().Equal(http.StatusCreated, status)

	var created map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal("pending", created["status"])
	s.NotEmpty(created["_id"])
	s.NotContains(created, "amount_lost")
}

func (s *RouterSuite) TestSubmissionValidationErrors() {
	status, env, _ := s.do(http.MethodPost, "/api/complaints", "",
		`{"name":"","email":"bad","country":"US","description":"short","currency":"USD"}`)
	s.Require().Equal(http.StatusBadRequest, status)
	s.Require().NotNil(env.Error)
	s.Equal("VALIDATION_FAILED", env.Error.Code)
	s.Equal(map[string]string{
		"name":        "Name is required",
		"email":       "Invalid email format",
		"description": "Please provide at least 10 characters",
	}, env.Error.Details)
}

func (s *RouterSuite) TestSubmissionIsRateLimited() {
	for i := 0; i < 3; i++ {
		status, _, _ := s.do(http.MethodPost, "/api/complaints", "", validSubmission)
		s.Require().Equal(http.StatusCreated, status)
	}
	status, env, _ := s.do(http.MethodPost, "/api/complaints", "", validSubmission)
	s.Equal(http.StatusTooManyRequests, status)
	s.Equal("RATE_LIMITED", env.Error.Code)
}

func (s *RouterSuite) TestOperatorRoutesRequireSession() {
	for _, path := range []string{"/api/complaints", "/api/dashboard", "/api/complaints/export"} {
		status, env, _ := s.do(http.MethodGet, path, "", "")
		s.Equal(http.StatusUnauthorized, status, path)
		s.Equal("UNAUTHORIZED", env.Error.Code)
	}
	status, _, _ := s.do(http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterSuite) TestTriageFlow() {
	_, env, _ := s.do(http.MethodPost, "/api/complaints", "", validSubmission)
	var created struct {
		ID string `json:"_id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	token := s.login()

	status, env, _ := s.do(http.MethodGet, "/api/complaints?status=pending&search=JOHN", token, "")
	s.Require().Equal(http.StatusOK, status)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list, 1)

	status, env, _ = s.do(http.MethodPut, "/api/complaints/"+created.ID, token, `{"status":"resolved"}`)
	s.Equal(http.StatusBadRequest, status)
	s.Contains(env.Error.Details, "admin_notes")

	status, env, _ = s.do(http.MethodPut, "/api/complaints/"+created.ID, token, `{"status":"resolved","admin_notes":"refunded"}`)
	s.Require().Equal(http.StatusOK, status)
	var updated map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &updated))
	s.Equal("resolved", updated["status"])
	s.Equal("refunded", updated["admin_notes"])

	status, _, _ = s.do(http.MethodPut, "/api/complaints/unknown", token, `{"status":"closed","admin_notes":""}`)
	s.Equal(http.StatusNotFound, status)

	status, env, _ = s.do(http.MethodGet, "/api/complaints/"+created.ID+"/history", token, "")
	s.Require().Equal(http.StatusOK, status)
	var history []map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &history))
	s.Require().Len(history, 1)
	s.Equal("admin", history[0]["operator_id"])

	status, env, _ = s.do(http.MethodGet, "/api/dashboard", token, "")
	s.Require().Equal(http.StatusOK, status)
	var dashboard map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &dashboard))
	s.Equal(1.0, dashboard["total"])
	s.Equal(1.0, dashboard["resolved"])

	status, _, raw := s.do(http.MethodGet, "/api/complaints/export?status=resolved", token, "")
	s.Require().Equal(http.StatusOK, status)
	s.True(strings.HasPrefix(string(raw), "id,created_at,name"))
	s.Contains(string(raw), "refunded")
}

func (s *RouterSuite) TestLogoutRevokesToken() {
	token := s.login()

	status, _, _ := s.do(http.MethodPost, "/api/auth/logout", token, "")
	s.Require().Equal(http.StatusNoContent, status)

	status, _, _ = s.do(http.MethodGet, "/api/complaints", token, "")
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterSuite) TestPublicReferenceAndHealth() {
	status, env, _ := s.do(http.MethodGet, "/api/currencies", "", "")
	s.Require().Equal(http.StatusOK, status)
	var list []map[string]string
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Equal("EUR", list[0]["code"])

	status, _, _ = s.do(http.MethodGet, "/health/live", "", "")
	s.Equal(http.StatusOK, status)
	status, _, _ = s.do(http.MethodGet, "/health/ready", "", "")
	s.Equal(http.StatusOK, status)

	status, _, raw := s.do(http.MethodGet, "/metrics", "", "")
	s.Equal(http.StatusOK, status)
	s.Contains(string(raw), "fraud_desk_http_requests_total")
}

func (s *RouterSuite) TestMetricsLabelRoutesNotRawPaths() {
	for i := 0; i < 40; i++ {
		status, _, _ := s.do(http.MethodGet, "/no-such-page/"+uuid.NewString(), "", "")
		s.Require().Equal(http.StatusNotFound, status)
		status, _, _ = s.do(http.MethodGet, "/api/complaints/"+uuid.NewString(), "", "")
		s.Require().Equal(http.StatusUnauthorized, status)
	}

	status, _, raw := s.do(http.MethodGet, "/metrics", "", "")
	s.Require().Equal(http.StatusOK, status)
	s.NotContains(string(raw), "no-such-page")
	s.Contains(string(raw), `route="/api/complaints/:id"`)
	s.Contains(string(raw), `route="unmatched"`)

	families, err := s.metrics.Registry.Gather()
	s.Require().NoError(err)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" {
					s.NotContains(label.GetValue(), "-", "raw path leaked into %s", family.GetName())
				}
			}
		}
	}

	errorSeries, err := testutil.GatherAndCount(s.metrics.Registry, "fraud_desk_http_errors_total")
	s.Require().NoError(err)
	s.Equal(2, errorSeries)
}
