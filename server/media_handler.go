package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) handleUploadPhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("file is required", http.StatusBadRequest))
			return
		}

		photoURL, thumbnailURL, err := s.MediaService.UploadPhoto(c.Request.Context(), fileHeader, userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "photo uploaded", http.StatusOK, gin.H{
			"photo_url":     photoURL,
			"thumbnail_url": thumbnailURL,
		}, nil)
	}
}
