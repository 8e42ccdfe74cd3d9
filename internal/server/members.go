package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
)

func (s *Server) ListMembers(c *gin.Context) {
	members, err := s.memberSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) CreateMember(c *gin.Context) {
	var req memberdomain.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	member, err := s.memberSvc.CreateStaff(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}
