package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mainginick/market-speculation-hub/internal/models"
)

// snapshotRepository хранит текущий снимок рынка: одна строка на символ,
// единственный писатель - фоновый рефрешер (last-writer-wins)
type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, quotes []models.MarketQuote) error {
	if len(quotes) == 0 {
		return fmt.Errorf("пустой снимок не сохраняем")
	}

	// same ON CONFLICT syntax on Postgres and SQLite
	query := `
		INSERT INTO market_quotes (symbol, last_price, change, fetched_at)
		VALUES (:symbol, :last_price, :change, :fetched_at)
		ON CONFLICT (symbol) DO UPDATE SET
			last_price = excluded.last_price,
			change = excluded.change,
			fetched_at = excluded.fetched_at
	`

	now := time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	symbols := make([]string, 0, len(quotes))

	for i := range quotes {
		if quotes[i].FetchedAt.IsZero() {
			quotes[i].FetchedAt = now
		}

		_, err = tx.NamedExecContext(ctx, query, quotes[i])
		if err != nil {
			return fmt.Errorf("ошибка при сохранении котировки %s: %w", quotes[i].Symbol, err)
		}

		symbols = append(symbols, quotes[i].Symbol)
	}

	// строгое замещение: символы, выпавшие из нового снимка, убираем
	delQuery, args, err := sqlx.In(`DELETE FROM market_quotes WHERE symbol NOT IN (?)`, symbols)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке очистки снимка: %w", err)
	}

	if _, err = tx.ExecContext(ctx, tx.Rebind(delQuery), args...); err != nil {
		return fmt.Errorf("ошибка при очистке устаревших котировок: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации снимка: %w", err)
	}

	return nil
}

func (r *snapshotRepository) GetCurrentSnapshot(ctx context.Context) ([]models.MarketQuote, error) {
	query := `SELECT * FROM market_quotes ORDER BY symbol`

	var quotes []models.MarketQuote
	err := r.db.SelectContext(ctx, &quotes, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении снимка рынка: %w", err)
	}

	return quotes, nil
}
