package service

import (
	"log/slog"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/market"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
	"github.com/Mainginick/market-speculation-hub/internal/storage"
)

type Service struct {
	Auth   AuthService
	Post   PostService
	Market MarketService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, fetcher market.Fetcher) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, cfg),
		Post:   NewPostService(rep.Post, storage),
		Market: NewMarketService(rep.Snapshot, fetcher, cfg, slog.Default()),
	}
}
