package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	petdomain "github.com/vetcita/vetcita/internal/pet/domain"
)

func (s *Server) ListPets(c *gin.Context) {
	pets, err := s.petSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pets": pets})
}

func (s *Server) GetPet(c *gin.Context) {
	pet, err := s.petSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (s *Server) CreatePet(c *gin.Context) {
	var req petdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pet, err := s.petSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

func (s *Server) CreateOwner(c *gin.Context) {
	var req petdomain.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	owner, err := s.petSvc.CreateOwner(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, owner)
}
