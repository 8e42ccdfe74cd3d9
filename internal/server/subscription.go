package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
)

func (s *Server) GetSubscription(c *gin.Context) {
	sub, err := s.subscriptionSvc.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, subscriptiondomain.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"subscription": nil})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

func (s *Server) UpgradeSubscription(c *gin.Context) {
	var req subscriptiondomain.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.subscriptionSvc.Upgrade(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
