package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/market"
	"github.com/Mainginick/market-speculation-hub/internal/models"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
)

type MarketService interface {
	GetSnapshot(ctx context.Context) ([]models.MarketQuote, error)
}

type marketService struct {
	snapRepo repository.SnapshotRepository
	fetcher  market.Fetcher
	cfg      *config.Config
	logger   *slog.Logger
}

func NewMarketService(snapRepo repository.SnapshotRepository, fetcher market.Fetcher, cfg *config.Config, logger *slog.Logger) MarketService {
	return &marketService{
		snapRepo: snapRepo,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetSnapshot отдаёт сохранённый снимок. Если планировщик выключен,
// перед чтением делаем разовый fetch по запросу - как в деплое без рефрешера.
// Ошибки fetch не фатальны: логируем и отдаём то, что лежит в БД
func (s *marketService) GetSnapshot(ctx context.Context) ([]models.MarketQuote, error) {
	if !s.cfg.EnableScheduler {
		quotes, err := s.fetcher.FetchQuotes(ctx)
		if err != nil {
			s.logger.Warn("Не удалось получить данные рынка", slog.Any("error", err))
		} else if saveErr := s.snapRepo.SaveSnapshot(ctx, quotes); saveErr != nil {
			s.logger.Warn("Не удалось сохранить снимок рынка", slog.Any("error", saveErr))
		} else {
			return quotes, nil
		}
	}

	quotes, err := s.snapRepo.GetCurrentSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении снимка рынка: %w", err)
	}

	return quotes, nil
}
