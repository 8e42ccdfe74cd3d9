package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	authrepo "github.com/vetcita/vetcita/internal/auth/repository"
	authservice "github.com/vetcita/vetcita/internal/auth/service"
	"github.com/vetcita/vetcita/internal/clock"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	subscriptionrepo "github.com/vetcita/vetcita/internal/subscription/repository"
	subscriptionservice "github.com/vetcita/vetcita/internal/subscription/service"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	tenantrepo "github.com/vetcita/vetcita/internal/tenant/repository"
	tenantservice "github.com/vetcita/vetcita/internal/tenant/service"
)

func setupSignupServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&tenantdomain.Tenant{},
		&memberdomain.TenantMember{},
		&subscriptiondomain.TenantSubscription{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	srv := &Server{
		db:    dbConn,
		genID: node,
		authSvc: authservice.New(authservice.Params{
			Log:         log,
			GenID:       node,
			Clock:       fake,
			Repo:        authrepo.ProvideUserRepository(dbConn),
			SessionRepo: authrepo.ProvideSessionRepository(dbConn),
		}),
		tenantSvc: tenantservice.New(tenantservice.Params{
			DB:    dbConn,
			Log:   log,
			GenID: node,
			Clock: fake,
			Repo:  tenantrepo.Provide(),
		}),
		subscriptionSvc: subscriptionservice.New(subscriptionservice.Params{
			DB:         dbConn,
			Log:        log,
			GenID:      node,
			Clock:      fake,
			Repo:       subscriptionrepo.Provide(),
			TenantRepo: tenantrepo.Provide(),
		}),
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.POST("/auth/signup", srv.Signup)
	srv.engine = engine
	return srv, dbConn
}

func postSignup(srv *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	return resp
}

func TestSignupProvisionsClinic(t *testing.T) {
	srv, dbConn := setupSignupServer(t)

	resp := postSignup(srv, `{"clinic_name":"Clínica Central","subdomain":"central","email":"ana@clinica.mx","password":"supersecreta"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var subs int64
	require.NoError(t, dbConn.Model(&subscriptiondomain.TenantSubscription{}).Count(&subs).Error)
	assert.EqualValues(t, 1, subs)

	var members int64
	require.NoError(t, dbConn.Model(&memberdomain.TenantMember{}).Count(&members).Error)
	assert.EqualValues(t, 1, members)
}

func TestSignupRollsBackWhenSubdomainTaken(t *testing.T) {
	srv, dbConn := setupSignupServer(t)

	resp := postSignup(srv, `{"clinic_name":"Clínica Central","subdomain":"central","email":"ana@clinica.mx","password":"supersecreta"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = postSignup(srv, `{"clinic_name":"Clínica Norte","subdomain":"central","email":"luis@clinica.mx","password":"supersecreta"}`)
	require.Equal(t, http.StatusConflict, resp.Code)

	// The failed signup must not leave an orphaned user behind.
	var users int64
	require.NoError(t, dbConn.Model(&authdomain.User{}).Where("email = ?", "luis@clinica.mx").Count(&users).Error)
	assert.Zero(t, users)

	// A retry with the same email and a free subdomain succeeds.
	resp = postSignup(srv, `{"clinic_name":"Clínica Norte","subdomain":"norte","email":"luis@clinica.mx","password":"supersecreta"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
}
