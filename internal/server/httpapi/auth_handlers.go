package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentlyapp/rently/internal/common"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	profile, err := s.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": profile})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrValidation)
		return
	}

	identity, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	setSessionCookie(c, token, s.config.TokenValidityDuration)
	c.JSON(http.StatusOK, gin.H{"user": identity})
}

func (s *Server) handleLogout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": s.auth.Logout()})
}

func (s *Server) handleProfile(c *gin.Context) {
	identity := identityFrom(c)

	profile, err := s.auth.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": profile.ID,
		"email":  profile.Email,
		"name":   profile.Name,
	})
}
