package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
	"github.com/lqitha/lqitha-backend/services"
)

func limitQuery(c *gin.Context, fallback int) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return fallback
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func (s *Server) handleGetTransactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		txs, err := s.RewardService.GetTransactions(userID, limitQuery(c, 50))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, txs, nil)
	}
}

func (s *Server) handleGetLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.RewardService.GetLeaderboard(limitQuery(c, 10))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, entries, nil)
	}
}

func (s *Server) handleManualAward() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ManualAwardRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		txKind := request.TransactionType
		if txKind == "" {
			txKind = models.TxManualAward
		}
		description := request.Description
		if description == "" {
			description = "Manual adjustment"
		}

		total, err := s.RewardService.AwardPoints(services.AwardInput{
			UserID:          request.UserID,
			Points:          *request.Points,
			TransactionType: txKind,
			Description:     description,
		})
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "points awarded", http.StatusOK, gin.H{"points": total}, nil)
	}
}
