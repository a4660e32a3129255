package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Mainginick/market-speculation-hub/internal/market"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
)

// Refresher periodically fetches a market snapshot and overwrites the stored
// one. It is created only when the scheduler flag is enabled; the handle is
// owned by main and torn down on shutdown.
type Refresher struct {
	fetcher  market.Fetcher
	snapRepo repository.SnapshotRepository
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewRefresher(fetcher market.Fetcher, snapRepo repository.SnapshotRepository, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		snapRepo: snapRepo,
		interval: interval,
		logger:   logger,
	}
}

// Start выполняет первый fetch сразу и дальше тикает по интервалу.
// Ошибка fetch логируется, прежний снимок не трогаем, повтор - на следующем тике.
func (r *Refresher) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		r.refreshOnce(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Рефрешер рынка остановлен")
				return
			case <-ticker.C:
				r.refreshOnce(ctx)
			}
		}
	}()

	r.logger.Info("Рефрешер рынка запущен", slog.Duration("interval", r.interval))
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	quotes, err := r.fetcher.FetchQuotes(ctx)
	if err != nil {
		r.logger.Warn("Не удалось получить данные рынка", slog.Any("error", err))
		return
	}

	if err := r.snapRepo.SaveSnapshot(ctx, quotes); err != nil {
		r.logger.Warn("Не удалось сохранить снимок рынка", slog.Any("error", err))
		return
	}

	r.logger.Info("Снимок рынка обновлён", slog.Int("symbols", len(quotes)))
}

// Stop отменяет контекст тикера и ждёт завершения горутины
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.wg.Wait()
	}
}
