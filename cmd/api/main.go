package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/navaro-app/navaro-api/internal/config"
	dbpkg "github.com/navaro-app/navaro-api/internal/db"
	"github.com/navaro-app/navaro-api/internal/kvstore"
	"github.com/navaro-app/navaro-api/internal/notification"
	"github.com/navaro-app/navaro-api/internal/payments"
	"github.com/navaro-app/navaro-api/internal/routes"
	"github.com/navaro-app/navaro-api/internal/scheduler"
	"github.com/navaro-app/navaro-api/internal/settings"
	"github.com/navaro-app/navaro-api/internal/storage"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisClient := kvstore.NewRedisClient(cfg)
	codes := kvstore.New(redisClient)

	settingsService := settings.NewService(db, redisClient)

	notifier := notification.NewService(
		db,
		notification.NewEmailSender(cfg),
		notification.NewPushSender(cfg),
	)

	uploader, err := storage.NewUploader(cfg)
	if err != nil {
		log.Fatalf("failed to init object storage: %v", err)
	}

	provider, err := payments.NewProvider(cfg)
	if err != nil {
		log.Fatalf("failed to init payment provider: %v", err)
	}

	scheduler.New(db, notifier).Start()

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Codes:    codes,
		Settings: settingsService,
		Notifier: notifier,
		Uploader: uploader,
		Provider: provider,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
