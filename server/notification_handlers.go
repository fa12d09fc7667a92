package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) handleListNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		unreadOnly := c.Query("unread") == "true"
		notifications, err := s.NotificationService.ListNotifications(userID, unreadOnly)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		count, err := s.NotificationService.UnreadCount(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"unread_count": count}, nil)
	}
}

func (s *Server) handleMarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		id, err := uintParam(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		notification, err := s.NotificationService.MarkRead(userID, id)
		if err != nil {
			response.HandleErrors(c, mapNotFound(err))
			return
		}
		response.JSON(c, "notification marked read", http.StatusOK, notification, nil)
	}
}

func (s *Server) handleMarkAllRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		updated, err := s.NotificationService.MarkAllRead(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "notifications marked read", http.StatusOK, gin.H{"updated": updated}, nil)
	}
}
