package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) handleCreateUnlock() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		var request models.CreateUnlockRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		unlock, err := s.UnlockService.CreateUnlock(user, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "contact unlocked", http.StatusCreated, unlock, nil)
	}
}

func (s *Server) handleListUnlocks() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		unlocks, err := s.UnlockService.ListUnlocks(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, unlocks, nil)
	}
}
