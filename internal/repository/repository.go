package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mainginick/market-speculation-hub/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetFeed(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, quotes []models.MarketQuote) error
	GetCurrentSnapshot(ctx context.Context) ([]models.MarketQuote, error)
}

type Repository struct {
	User     UserRepository
	Post     PostRepository
	Snapshot SnapshotRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Snapshot: NewSnapshotRepository(db),
	}
}
