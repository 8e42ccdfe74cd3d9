package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/vetcita/vetcita/internal/analytics/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
)

// IngestAnalyticsEvent always answers 202. Malformed payloads are dropped
// and over-limit tenants shed silently; anything else would hand out a
// validation oracle.
func (s *Server) IngestAnalyticsEvent(c *gin.Context) {
	var req analyticsdomain.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
		return
	}

	ctx := c.Request.Context()
	if tenantID, ok := tenantctx.TenantIDFromContext(ctx); ok && s.analyticsLimiter.Enabled() {
		if !s.analyticsLimiter.Allow(ctx, tenantID.String()) {
			c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
			return
		}
	}

	s.analyticsSvc.Ingest(ctx, req)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
