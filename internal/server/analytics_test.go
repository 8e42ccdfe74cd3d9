package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdomain "github.com/vetcita/vetcita/internal/analytics/domain"
	superadmindomain "github.com/vetcita/vetcita/internal/superadmin/domain"
)

type fakeAnalyticsService struct {
	events []analyticsdomain.IngestRequest
}

func (f *fakeAnalyticsService) Ingest(ctx context.Context, req analyticsdomain.IngestRequest) {
	_ = ctx
	f.events = append(f.events, req)
}

func TestAnalyticsIngestAlwaysAccepts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	analyticsSvc := &fakeAnalyticsService{}
	srv := &Server{analyticsSvc: analyticsSvc}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/analytics/events", srv.IngestAnalyticsEvent)

	cases := []string{
		`{"event_name":"page_view","properties":{"path":"/pets"}}`,
		`{"event_name":""}`,
		`not json at all`,
		``,
	}
	for _, payload := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/events", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusAccepted, resp.Code, "payload %q", payload)
	}

	// Only parseable payloads reach the service; the response never tells.
	require.Len(t, analyticsSvc.events, 2)
	assert.Equal(t, "page_view", analyticsSvc.events[0].EventName)
}

type fakeSuperAdminService struct {
	removeErr error
}

func (f *fakeSuperAdminService) List(ctx context.Context) ([]superadmindomain.Entry, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeSuperAdminService) Assign(ctx context.Context, req superadmindomain.AssignRequest) (*superadmindomain.Entry, error) {
	_ = ctx
	return &superadmindomain.Entry{UserID: req.UserID, Email: req.Email}, nil
}

func (f *fakeSuperAdminService) Remove(ctx context.Context, req superadmindomain.RemoveRequest) error {
	_ = ctx
	_ = req
	return f.removeErr
}

func (f *fakeSuperAdminService) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	_ = ctx
	_ = userID
	return true, nil
}

func TestRemoveSuperAdminSelfRemovalIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		superAdminSvc: &fakeSuperAdminService{removeErr: superadmindomain.ErrSelfRemoval},
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.DELETE("/admin/super-admins", srv.RemoveSuperAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/admin/super-admins", strings.NewReader(`{"email":"admin@vetcita.mx"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "self_removal", body.Error.Type)
	assert.Equal(t, "No puedes eliminar tu propio acceso de super administrador", body.Error.Message)
}

func TestInternalErrorsCollapseToGenericMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.GET("/boom", func(c *gin.Context) {
		AbortWithError(c, assert.AnError)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Error.Type)
	assert.Equal(t, genericInternalMessage, body.Error.Message)
}
