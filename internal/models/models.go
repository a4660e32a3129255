package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Caption   string    `json:"caption" db:"caption"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MarketQuote - одна строка текущего снимка рынка, перезаписывается по symbol
type MarketQuote struct {
	Symbol    string          `json:"symbol" db:"symbol"`
	LastPrice decimal.Decimal `json:"last" db:"last_price"`
	Change    decimal.Decimal `json:"change" db:"change"`
	FetchedAt time.Time       `json:"fetchedAt" db:"fetched_at"`
}
