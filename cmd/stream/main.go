package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"video-streaming/api/handler"
	"video-streaming/internal/config"
	"video-streaming/internal/database"
	"video-streaming/internal/repository"
	"video-streaming/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	blobs, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Error initializing blob storage: %v", err)
	}

	h := &handler.Handler{
		Videos: repository.NewVideoRepository(db),
		Blobs:  blobs,
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/", h.Hello)
	e.POST("/video", h.Upload)
	e.GET("/videos", h.GetVideos)
	e.GET("/stream/:videoId", h.Stream)

	e.Logger.Infof("server starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", cfg.ServerPort)))
}
