package main

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"github.com/lqitha/lqitha-backend/config"
	"github.com/lqitha/lqitha-backend/db"
	"github.com/lqitha/lqitha-backend/logger"
	"github.com/lqitha/lqitha-backend/mailingservices"
	"github.com/lqitha/lqitha-backend/server"
	"github.com/lqitha/lqitha-backend/services"
)

// InitFirebase builds the FCM messaging client. Push delivery is optional, a
// missing credentials file only disables it.
func InitFirebase(credentialsFile string) *messaging.Client {
	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("firebase credentials not found at %s, push notifications disabled", credentialsFile)
		return nil
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Fatalf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Fatalf("error getting Messaging client: %v", err)
	}
	log.Println("Firebase Messaging client initialized")
	return client
}

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	appLogger := logger.New(conf.Env)

	messagingClient := InitFirebase(conf.GoogleApplicationCredentials)
	var messenger services.Messenger
	if messagingClient != nil {
		messenger = services.NewFCMMessenger(messagingClient)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	if email := os.Getenv("LQITHA_ADMIN_EMAIL"); email != "" {
		if err := db.SeedAdmin(gormDB.DB, email, os.Getenv("LQITHA_ADMIN_PASSWORD")); err != nil {
			log.Fatalf("error seeding admin: %v", err)
		}
	}

	authRepo := db.NewAuthRepo(gormDB)
	postRepo := db.NewPostRepo(gormDB)
	ledgerRepo := db.NewLedgerRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	unlockRepo := db.NewUnlockRepo(gormDB)

	notificationService := services.NewNotificationService(authRepo, notificationRepo, messenger, appLogger)
	rewardService := services.NewRewardService(authRepo, ledgerRepo, notificationService, appLogger)
	moderationService := services.NewModerationService(postRepo, authRepo, rewardService, notificationService, appLogger)
	authService := services.NewAuthService(authRepo, notificationService, mailgunClient, conf, appLogger)
	postService := services.NewPostService(postRepo, rewardService, appLogger)
	unlockService := services.NewUnlockService(unlockRepo, postRepo, notificationService, appLogger)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		PostService:         postService,
		RewardService:       rewardService,
		ModerationService:   moderationService,
		NotificationService: notificationService,
		UnlockService:       unlockService,
		MediaService:        mediaService,
		Mail:                mailgunClient,
		Logger:              appLogger,
	}

	s.Start()
}
