package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	errs "github.com/lqitha/lqitha-backend/errors"
	"github.com/lqitha/lqitha-backend/server/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the app origin; CORS already gates the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const streamPollInterval = 3 * time.Second

// handleNotificationStream pushes new notifications over a websocket. The
// client gets every notification created after it connected.
func (s *Server) handleNotificationStream() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.HandleErrors(c, errs.ErrUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			s.Logger.WithFields(logrus.Fields{
				"user_id": userID,
				"err":     err.Error(),
			}).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		// Reader goroutine notices the client going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		lastSeen := time.Now()
		ticker := time.NewTicker(streamPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				notifications, err := s.NotificationService.ListCreatedAfter(userID, lastSeen)
				if err != nil {
					s.Logger.WithFields(logrus.Fields{
						"user_id": userID,
						"err":     err.Error(),
					}).Warn("notification stream query failed")
					continue
				}
				for i := range notifications {
					if err := conn.WriteJSON(notifications[i]); err != nil {
						return
					}
					if notifications[i].CreatedAt.After(lastSeen) {
						lastSeen = notifications[i].CreatedAt
					}
				}
			}
		}
	}
}
