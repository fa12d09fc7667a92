package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lqitha/lqitha-backend/config"
	"github.com/lqitha/lqitha-backend/db"
	"github.com/lqitha/lqitha-backend/mailingservices"
	"github.com/lqitha/lqitha-backend/services"
)

// Server holds every dependency the handlers need. Handlers hang off it as
// gin.HandlerFunc closures.
type Server struct {
	Config              *config.Config
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	PostService         services.PostService
	RewardService       services.RewardService
	ModerationService   services.ModerationService
	NotificationService services.NotificationService
	UnlockService       services.UnlockService
	MediaService        services.MediaService
	Mail                *mailingservices.Mailgun
	Logger              *logrus.Logger
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 10 seconds.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}
