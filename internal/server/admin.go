package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	superadmindomain "github.com/vetcita/vetcita/internal/superadmin/domain"
)

func (s *Server) BillingSummary(c *gin.Context) {
	summary, err := s.adminReportSvc.BillingSummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) ListSuperAdmins(c *gin.Context) {
	entries, err := s.superAdminSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"super_admins": entries})
}

func (s *Server) AssignSuperAdmin(c *gin.Context) {
	var req superadmindomain.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry, err := s.superAdminSvc.Assign(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) RemoveSuperAdmin(c *gin.Context) {
	var req superadmindomain.RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.superAdminSvc.Remove(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
