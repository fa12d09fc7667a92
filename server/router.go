package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lqitha/lqitha-backend/models"
	"github.com/lqitha/lqitha-backend/server/response"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	loginLimiter := limitLoginAttempts(store)

	api := router.Group("/api/v1")
	api.GET("/health", s.handleHealth())

	api.POST("/auth/register", s.handleRegister())
	api.POST("/auth/login", loginLimiter, s.handleLogin())
	api.GET("/auth/check-email", s.handleCheckEmail())

	authorized := api.Group("/")
	authorized.Use(s.Authorize())

	authorized.GET("/users/:id", s.handleGetUser())
	authorized.PUT("/users/:id", s.handleEditUserProfile())
	authorized.GET("/users/:id/username", s.handleGetUsername())
	authorized.POST("/users/change-password", s.handleChangePassword())
	authorized.POST("/users/fcm-token", s.handleUpdateFCMToken())

	for _, route := range []struct {
		path string
		kind models.PostKind
	}{
		{"/found-posts", models.PostKindFound},
		{"/lost-posts", models.PostKindLost},
	} {
		authorized.GET(route.path, s.handleListPosts(route.kind))
		authorized.POST(route.path, s.handleCreatePost(route.kind))
		authorized.GET(route.path+"/:id", s.handleGetPost(route.kind))
		authorized.DELETE(route.path+"/:id", s.handleDeletePost(route.kind))
	}

	authorized.GET("/notifications", s.handleListNotifications())
	authorized.GET("/notifications/unread-count", s.handleUnreadCount())
	authorized.PUT("/notifications/:id/read", s.handleMarkRead())
	authorized.PUT("/notifications/mark-all-read", s.handleMarkAllRead())
	authorized.GET("/notifications/stream", s.handleNotificationStream())

	authorized.GET("/rewards/transactions", s.handleGetTransactions())
	authorized.GET("/rewards/leaderboard", s.handleGetLeaderboard())
	authorized.POST("/rewards/award", s.AdminOnly(), s.handleManualAward())

	authorized.POST("/unlocks", s.handleCreateUnlock())
	authorized.GET("/unlocks", s.handleListUnlocks())

	authorized.PUT("/upload", s.handleUploadPhoto())

	admin := authorized.Group("/admin")
	admin.Use(s.AdminOnly())
	admin.PUT("/status/:kind/:id", s.handleUpdatePostStatus())
	admin.GET("/statistics", s.handleGetStatistics())
}

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "ok", http.StatusOK, nil, nil)
	}
}
