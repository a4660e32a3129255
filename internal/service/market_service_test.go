package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/models"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, quotes []models.MarketQuote) error {
	args := m.Called(ctx, quotes)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetCurrentSnapshot(ctx context.Context) ([]models.MarketQuote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarketQuote), args.Error(1)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchQuotes(ctx context.Context) ([]models.MarketQuote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarketQuote), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sampleQuotes() []models.MarketQuote {
	return []models.MarketQuote{
		{Symbol: "AAPL", LastPrice: decimal.NewFromFloat(231.5)},
	}
}

func TestMarketService_GetSnapshot_SchedulerEnabled(t *testing.T) {
	snapRepo := new(MockSnapshotRepository)
	fetcher := new(MockFetcher)
	cfg := &config.Config{EnableScheduler: true}

	svc := NewMarketService(snapRepo, fetcher, cfg, testLogger())

	stored := sampleQuotes()
	snapRepo.On("GetCurrentSnapshot", mock.Anything).Return(stored, nil)

	quotes, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, quotes)

	// при включенном планировщике сервис не должен дергать внешний API
	fetcher.AssertNotCalled(t, "FetchQuotes", mock.Anything)
}

func TestMarketService_GetSnapshot_SchedulerDisabledFetchesOnDemand(t *testing.T) {
	snapRepo := new(MockSnapshotRepository)
	fetcher := new(MockFetcher)
	cfg := &config.Config{EnableScheduler: false}

	svc := NewMarketService(snapRepo, fetcher, cfg, testLogger())

	fresh := sampleQuotes()
	fetcher.On("FetchQuotes", mock.Anything).Return(fresh, nil)
	snapRepo.On("SaveSnapshot", mock.Anything, fresh).Return(nil)

	quotes, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fresh, quotes)

	snapRepo.AssertCalled(t, "SaveSnapshot", mock.Anything, fresh)
	snapRepo.AssertNotCalled(t, "GetCurrentSnapshot", mock.Anything)
}

func TestMarketService_GetSnapshot_FetchFailureFallsBackToStored(t *testing.T) {
	snapRepo := new(MockSnapshotRepository)
	fetcher := new(MockFetcher)
	cfg := &config.Config{EnableScheduler: false}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	svc := NewMarketService(snapRepo, fetcher, cfg, logger)

	stored := sampleQuotes()
	fetcher.On("FetchQuotes", mock.Anything).Return(nil, errors.New("сеть недоступна"))
	snapRepo.On("GetCurrentSnapshot", mock.Anything).Return(stored, nil)

	quotes, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, quotes)

	// провал fetch не молчит
	assert.Contains(t, logBuf.String(), "Не удалось получить данные рынка")
	assert.Contains(t, logBuf.String(), "сеть недоступна")
}

func TestMarketService_GetSnapshot_SaveFailureLoggedAndFallsBack(t *testing.T) {
	snapRepo := new(MockSnapshotRepository)
	fetcher := new(MockFetcher)
	cfg := &config.Config{EnableScheduler: false}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	svc := NewMarketService(snapRepo, fetcher, cfg, logger)

	fresh := sampleQuotes()
	stored := []models.MarketQuote{
		{Symbol: "MSFT", LastPrice: decimal.NewFromFloat(512)},
	}
	fetcher.On("FetchQuotes", mock.Anything).Return(fresh, nil)
	snapRepo.On("SaveSnapshot", mock.Anything, fresh).Return(errors.New("database is locked"))
	snapRepo.On("GetCurrentSnapshot", mock.Anything).Return(stored, nil)

	quotes, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, quotes)
	assert.Contains(t, logBuf.String(), "Не удалось сохранить снимок рынка")
}

func TestMarketService_GetSnapshot_ReadFailure(t *testing.T) {
	snapRepo := new(MockSnapshotRepository)
	fetcher := new(MockFetcher)
	cfg := &config.Config{EnableScheduler: true}

	svc := NewMarketService(snapRepo, fetcher, cfg, testLogger())

	snapRepo.On("GetCurrentSnapshot", mock.Anything).Return(nil, errors.New("БД недоступна"))

	quotes, err := svc.GetSnapshot(context.Background())

	assert.Error(t, err)
	assert.Nil(t, quotes)
}
