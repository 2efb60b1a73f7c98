package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"

	"boutique-backend/config"
	"boutique-backend/controllers"
	"boutique-backend/routes"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		logger.Sugar().Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Sugar().Errorw("failed to disconnect from MongoDB", "error", err)
		}
	}()

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			logger.Sugar().Fatalw("failed to initialize Cloudinary", "error", err)
		}
	} else {
		logger.Sugar().Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	ctrl := &controllers.Controller{
		DB:              client.Database(cfg.DatabaseName),
		Cld:             cld,
		PasetoSecretKey: cfg.PasetoSecretKey,
		Log:             logger.Sugar(),
	}

	r := routes.Setup(ctrl, cfg.Env)

	fmt.Println("🚀 Boutique admin backend starting...")
	fmt.Printf("🌐 Server will run on: http://localhost:%s\n", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Sugar().Fatalw("server stopped", "error", err)
	}
}
