package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
)

func uintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errs.New("invalid "+name, http.StatusBadRequest)
	}
	return uint(id), nil
}

func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uintParam(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		user, err := s.AuthService.GetUserProfile(id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleGetUsername() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uintParam(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		username, err := s.AuthService.GetUsername(id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"username": username}, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uintParam(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		requester := currentUser(c)
		if requester == nil || (requester.ID != id && !requester.IsAdmin()) {
			response.HandleErrors(c, errs.ErrForbidden)
			return
		}

		var request models.EditProfileRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		user, err := s.AuthService.EditUserProfile(id, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile updated", http.StatusOK, user, nil)
	}
}

func (s *Server) handleChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		var request models.ChangePasswordRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		if err := s.AuthService.ChangePassword(userID, &request); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "password changed", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUpdateFCMToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		var request models.FCMTokenRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		if err := s.AuthService.UpdateFCMToken(userID, request.FCMToken); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "fcm token updated", http.StatusOK, nil, nil)
	}
}
