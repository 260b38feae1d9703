package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
	"github.com/dmitrijs2005/doubtsolver/internal/server/users"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	User        models.UserResponse `json:"user"`
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	u, token, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		abortDetail(c, http.StatusBadRequest, "User with this email already exists")
		return
	case errors.Is(err, users.ErrMissingFields):
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error(c.Request.Context(), "registration error", "error", err)
		abortDetail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Success:     true,
		Message:     "User registered successfully",
		User:        u.Response(),
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	u, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		abortDetail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		s.logger.Error(c.Request.Context(), "login error", "error", err)
		abortDetail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Success:     true,
		Message:     "Login successful",
		User:        u.Response(),
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).Response())
}

// handleLogout acknowledges; tokens are stateless and the client drops its
// copy.
func (s *Server) handleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
