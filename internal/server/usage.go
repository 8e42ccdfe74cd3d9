package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
)

// GetUsage reports current counters against the plan's limits, for meters
// and warning banners.
func (s *Server) GetUsage(c *gin.Context) {
	ctx := c.Request.Context()

	counters, err := s.usageSvc.Counters(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	limits := gin.H{}
	for _, key := range []plandomain.LimitKey{plandomain.LimitPets, plandomain.LimitUsers, plandomain.LimitWhatsApp} {
		check, err := s.entitlementSvc.CheckLimit(ctx, key)
		if err != nil {
			continue
		}
		limits[string(key)] = check
	}

	c.JSON(http.StatusOK, gin.H{
		"counters": counters,
		"limits":   limits,
	})
}
