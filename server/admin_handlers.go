package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
	"github.com/lqitha/lqitha-backend/services"
)

// handleUpdatePostStatus moderates a post. A reward failure after the status
// change is a partial success: 200 with a warning instead of an error.
func (s *Server) handleUpdatePostStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := models.ParsePostKind(c.Param("kind"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		var request models.StatusUpdateRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		post, err := s.ModerationService.UpdatePostStatus(kind, c.Param("id"), request.Status)
		if err != nil {
			if errors.Is(err, services.ErrRewardNotRecorded) {
				response.JSON(c, "post status updated", http.StatusOK, gin.H{
					"post":    post,
					"warning": err.Error(),
				}, nil)
				return
			}
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "post status updated", http.StatusOK, post, nil)
	}
}

func (s *Server) handleGetStatistics() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.ModerationService.GetStatistics()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, stats, nil)
	}
}
