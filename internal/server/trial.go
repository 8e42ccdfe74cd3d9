package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrialStatus returns the full banner value object. It stays reachable for
// expired tenants; the banner is how they learn they are expired.
func (s *Server) TrialStatus(c *gin.Context) {
	status, err := s.entitlementSvc.TrialStatus(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
