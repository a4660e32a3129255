package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
	"github.com/Mainginick/market-speculation-hub/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	PostService   service.PostService
	MarketService service.MarketService
	UserRepo      repository.UserRepository
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		PostService:   service.Post,
		MarketService: service.Market,
		UserRepo:      repo.User,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
