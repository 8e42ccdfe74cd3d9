package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	whatsappdomain "github.com/vetcita/vetcita/internal/whatsapp/domain"
	"github.com/vetcita/vetcita/pkg/db/pagination"
)

func (s *Server) ListWhatsAppMessages(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	messages, pageInfo, err := s.whatsappSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "page_info": pageInfo})
}

func (s *Server) SendWhatsAppMessage(c *gin.Context) {
	var req whatsappdomain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	msg, err := s.whatsappSvc.Send(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
