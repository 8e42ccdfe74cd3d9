package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	businesshoursdomain "github.com/vetcita/vetcita/internal/businesshours/domain"
)

func (s *Server) GetBusinessHours(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	schedule, err := s.businessHoursSvc.Get(c.Request.Context(), location)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpdateBusinessHours accepts round-tripped persisted records: ids,
// tenantId and timestamps in the payload are tolerated, and explicit null
// lunch fields clear the stored values.
func (s *Server) UpdateBusinessHours(c *gin.Context) {
	var req businesshoursdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	schedule, err := s.businessHoursSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
