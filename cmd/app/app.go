package app

import (
	"log"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/database"
	"github.com/Mainginick/market-speculation-hub/internal/market"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
	"github.com/Mainginick/market-speculation-hub/internal/service"
	"github.com/Mainginick/market-speculation-hub/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, storage.Storage) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// upload storage: MinIO when configured, otherwise local disk
	var store storage.Storage
	if cfg.UseMinIO() {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
		store = minioClient
	} else {
		localStore, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Не удалось инициализировать локальное хранилище: %v", err)
		}
		store = localStore
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	fetcher := market.NewClient(cfg.Market)

	services := service.NewService(repo, cfg, store, fetcher)

	return db, repo, services, store
}
