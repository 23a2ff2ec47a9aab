package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/server/services"
)

type updateAccommodationRequest struct {
	ID string `json:"id"`
	services.AccommodationInput
}

func (s *Server) handleCreateAccommodation(c *gin.Context) {
	var in services.AccommodationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	a, err := s.accommodations.Create(c.Request.Context(), identityFrom(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleListAccommodations(c *gin.Context) {
	list, err := s.accommodations.ListAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetAccommodation(c *gin.Context) {
	a, err := s.accommodations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleListOwnAccommodations(c *gin.Context) {
	list, err := s.accommodations.ListOwn(c.Request.Context(), identityFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// handleUpdateAccommodation takes the listing id in the request body, the way
// the frontend submits the whole edit form in one PUT.
func (s *Server) handleUpdateAccommodation(c *gin.Context) {
	var req updateAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	a, err := s.accommodations.Update(c.Request.Context(), identityFrom(c), req.ID, req.AccommodationInput)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}
