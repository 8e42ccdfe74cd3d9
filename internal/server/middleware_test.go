package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	entitlementdomain "github.com/vetcita/vetcita/internal/entitlement/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/trial"
)

type fakeEntitlementService struct {
	guard    entitlementdomain.Decision
	evaluate entitlementdomain.Decision
	status   *trial.Status
}

func (f *fakeEntitlementService) Evaluate(ctx context.Context, req entitlementdomain.Requirement) (entitlementdomain.Decision, error) {
	_ = ctx
	_ = req
	return f.evaluate, nil
}

func (f *fakeEntitlementService) Guard(ctx context.Context) (entitlementdomain.Decision, error) {
	_ = ctx
	return f.guard, nil
}

func (f *fakeEntitlementService) HasFeatureAccess(ctx context.Context, key plandomain.FeatureKey) bool {
	_ = ctx
	_ = key
	return f.evaluate.Allowed
}

func (f *fakeEntitlementService) CheckLimit(ctx context.Context, key plandomain.LimitKey) (plandomain.LimitCheck, error) {
	_ = ctx
	_ = key
	return plandomain.LimitCheck{}, nil
}

func (f *fakeEntitlementService) TrialStatus(ctx context.Context) (*trial.Status, error) {
	_ = ctx
	return f.status, nil
}

type fakeAuthService struct {
	session *authdomain.Session
}

func (f *fakeAuthService) WithTx(tx *gorm.DB) authdomain.Service {
	_ = tx
	return f
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	_ = ctx
	_ = req
	return nil, assert.AnError
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	_ = ctx
	_ = req
	return nil, assert.AnError
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	_ = rawToken
	return f.session, nil
}

func (f *fakeAuthService) SwitchTenant(ctx context.Context, sessionID snowflake.ID, tenantID *int64) error {
	_ = ctx
	_ = sessionID
	_ = tenantID
	return nil
}

func allowDecision() entitlementdomain.Decision {
	return entitlementdomain.Decision{Allowed: true}
}

func denyDecision(reason entitlementdomain.Reason, fallback entitlementdomain.Fallback) entitlementdomain.Decision {
	return entitlementdomain.Decision{Allowed: false, Reason: reason, Fallback: fallback}
}

func withTenant(tenantID snowflake.ID) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tenantctx.WithTenantID(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func TestSubscriptionGuardRedirectsPageRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{
			guard: denyDecision(entitlementdomain.ReasonTrialExpired, entitlementdomain.FallbackRedirect),
		},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/app/pets", srv.SubscriptionGuard(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/app/pets", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusSeeOther, resp.Code)
	location := resp.Header().Get("Location")
	assert.Contains(t, location, "/app/settings?")
	assert.Contains(t, location, "tab=subscription")
	assert.Contains(t, location, "reason=trial_expired")
}

func TestSubscriptionGuardReturnsJSONForAPIRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{
			guard: denyDecision(entitlementdomain.ReasonTrialExpired, entitlementdomain.FallbackRedirect),
		},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/pets", srv.SubscriptionGuard(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	req.Header.Set("Accept", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusForbidden, resp.Code)

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
		Fallback string `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "trial_expired", body.Error.Type)
	assert.Equal(t, "Tu periodo de prueba ha expirado", body.Error.Message)
	assert.Equal(t, "redirect", body.Fallback)
}

func TestSubscriptionGuardPassesAllowedRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{guard: allowDecision()},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/pets", srv.SubscriptionGuard(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestDenyRedirectLandsOnSettingsPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("public", 0o755))
	require.NoError(t, os.WriteFile("public/index.html", []byte("<html>vetcita</html>"), 0o644))

	tenantID := int64(101)
	srv := &Server{
		engine: gin.New(),
		authSvc: &fakeAuthService{
			session: &authdomain.Session{ID: 1, UserID: 7, ActiveTenantID: &tenantID},
		},
		entitlementSvc: &fakeEntitlementService{
			guard: denyDecision(entitlementdomain.ReasonTrialExpired, entitlementdomain.FallbackRedirect),
		},
	}
	srv.engine.Use(ErrorHandlingMiddleware())
	srv.registerUIRoutes()

	browse := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "token"})
		resp := httptest.NewRecorder()
		srv.engine.ServeHTTP(resp, req)
		return resp
	}

	resp := browse("/app/pets")
	require.Equal(t, http.StatusSeeOther, resp.Code)
	location := resp.Header().Get("Location")
	require.NotEmpty(t, location)

	followed := browse(location)
	require.Equal(t, http.StatusOK, followed.Code)
	assert.Contains(t, followed.Body.String(), "vetcita")
}

func TestRequireLimitBlocksMutationsAtTheCap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limit := plandomain.LimitCheck{CanAdd: false, Remaining: 0, Current: 100, Limit: 100, Percentage: 100}
	deny := denyDecision(entitlementdomain.ReasonLimitReached, entitlementdomain.FallbackPromptUpgrade)
	deny.Limit = &limit

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{evaluate: deny},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/pets", srv.requireLimit(plandomain.LimitPets), func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusForbidden, resp.Code)

	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
		Fallback string                `json:"fallback"`
		Limit    plandomain.LimitCheck `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "limit_reached", body.Error.Type)
	assert.Equal(t, "prompt_upgrade", body.Fallback)
	assert.Equal(t, 100, body.Limit.Current)
	assert.False(t, body.Limit.CanAdd)
}

func TestSettingsForcesSubscriptionTabWhileBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{
			guard:  denyDecision(entitlementdomain.ReasonTrialExpired, entitlementdomain.FallbackRedirect),
			status: &trial.Status{Status: trial.StatusExpired},
		},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/settings", withTenant(42), srv.GetSettings)

	req := httptest.NewRequest(http.MethodGet, "/api/settings?tab=hours", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Tab     string `json:"tab"`
		Blocked bool   `json:"blocked"`
		Reason  string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "subscription", body.Tab)
	assert.True(t, body.Blocked)
	assert.Equal(t, "trial_expired", body.Reason)
}

func TestSettingsHonorsTabWhenAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		entitlementSvc: &fakeEntitlementService{
			guard:  allowDecision(),
			status: &trial.Status{Status: trial.StatusActive},
		},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/api/settings", withTenant(42), srv.GetSettings)

	req := httptest.NewRequest(http.MethodGet, "/api/settings?tab=hours", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Tab     string `json:"tab"`
		Blocked bool   `json:"blocked"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "hours", body.Tab)
	assert.False(t, body.Blocked)
}
