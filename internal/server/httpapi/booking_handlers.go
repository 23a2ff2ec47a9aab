package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/server/services"
)

func (s *Server) handleCreateBooking(c *gin.Context) {
	var in services.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	b, err := s.bookings.Book(c.Request.Context(), identityFrom(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (s *Server) handleListBookings(c *gin.Context) {
	list, err := s.bookings.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCancelBooking(c *gin.Context) {
	err := s.bookings.Cancel(c.Request.Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
