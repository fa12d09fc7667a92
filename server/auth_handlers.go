package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.RegisterRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		user, err := s.AuthService.SignupUser(&request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "user created", http.StatusCreated, user, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		login, err := s.AuthService.LoginUser(&request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, login, nil)
	}
}

func (s *Server) handleCheckEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("email query parameter is required", http.StatusBadRequest))
			return
		}

		exists, err := s.AuthService.CheckEmailExists(email)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"exists": exists}, nil)
	}
}
