package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var settingsTabs = map[string]bool{
	"general":      true,
	"subscription": true,
	"hours":        true,
	"team":         true,
}

// GetSettings resolves the tab to show. While the tenant is blocked the
// subscription tab is forced, whatever the query says.
func (s *Server) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	decision, err := s.entitlementSvc.Guard(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tab := strings.TrimSpace(c.Query("tab"))
	if !settingsTabs[tab] {
		tab = "general"
	}

	payload := gin.H{"tab": tab}
	if !decision.Allowed {
		payload["tab"] = "subscription"
		payload["blocked"] = true
		payload["reason"] = decision.Reason
		payload["message"] = reasonMessage(decision.Reason)
	}

	if status, err := s.entitlementSvc.TrialStatus(ctx); err == nil {
		payload["trial"] = status
	}

	c.JSON(http.StatusOK, payload)
}
