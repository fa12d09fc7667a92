package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) handleCreatePost(kind models.PostKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		var request models.CreatePostRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		post, err := s.PostService.CreatePost(kind, userID, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "post created", http.StatusCreated, post, nil)
	}
}

func (s *Server) handleListPosts(kind models.PostKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.PostFilter{
			Status: c.Query("status"),
			Search: c.Query("search"),
		}
		if userIDStr := c.Query("user_id"); userIDStr != "" {
			userID, err := strconv.ParseUint(userIDStr, 10, 32)
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid user_id", http.StatusBadRequest))
				return
			}
			filter.UserID = uint(userID)
		}

		posts, err := s.PostService.ListPosts(kind, filter)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, posts, nil)
	}
}

func (s *Server) handleGetPost(kind models.PostKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := s.PostService.GetPost(kind, c.Param("id"))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, post, nil)
	}
}

func (s *Server) handleDeletePost(kind models.PostKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := currentUser(c)
		if requester == nil {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		if err := s.PostService.DeletePost(kind, c.Param("id"), requester); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "post deleted", http.StatusOK, nil, nil)
	}
}
