package market

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/models"
)

// Fetcher получает текущие котировки внешнего источника
type Fetcher interface {
	FetchQuotes(ctx context.Context) ([]models.MarketQuote, error)
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
		Change string `json:"09. change"`
	} `json:"Global Quote"`
}

type Client struct {
	http    *resty.Client
	apiURL  string
	apiKey  string
	symbols []string
}

func NewClient(cfg config.Market) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(cfg.FetchTimeout).
			SetHeader("Accept", "application/json"),
		apiURL:  cfg.APIURL,
		apiKey:  cfg.APIKey,
		symbols: cfg.Symbols,
	}
}

// FetchQuotes делает по одному запросу на символ; любая ошибка прерывает
// весь fetch - частичный снимок не сохраняем
func (c *Client) FetchQuotes(ctx context.Context) ([]models.MarketQuote, error) {
	if len(c.symbols) == 0 {
		return nil, fmt.Errorf("не настроен ни один символ")
	}

	now := time.Now()
	quotes := make([]models.MarketQuote, 0, len(c.symbols))

	for _, symbol := range c.symbols {
		quote, err := c.fetchQuote(ctx, symbol, now)
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении котировки %s: %w", symbol, err)
		}
		quotes = append(quotes, *quote)
	}

	return quotes, nil
}

func (c *Client) fetchQuote(ctx context.Context, symbol string, fetchedAt time.Time) (*models.MarketQuote, error) {
	var result globalQuoteResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&result).
		Get(c.apiURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("неожиданный статус ответа: %d", resp.StatusCode())
	}

	if result.GlobalQuote.Price == "" {
		return nil, fmt.Errorf("пустая котировка в ответе")
	}

	lastPrice, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil {
		return nil, fmt.Errorf("неверный формат цены %q: %w", result.GlobalQuote.Price, err)
	}

	change := decimal.Zero
	if result.GlobalQuote.Change != "" {
		change, err = decimal.NewFromString(result.GlobalQuote.Change)
		if err != nil {
			return nil, fmt.Errorf("неверный формат изменения %q: %w", result.GlobalQuote.Change, err)
		}
	}

	return &models.MarketQuote{
		Symbol:    symbol,
		LastPrice: lastPrice,
		Change:    change,
		FetchedAt: fetchedAt,
	}, nil
}
