package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Mainginick/market-speculation-hub/cmd/app"
	"github.com/Mainginick/market-speculation-hub/internal/config"
	handlers "github.com/Mainginick/market-speculation-hub/internal/handler"
	"github.com/Mainginick/market-speculation-hub/internal/logger"
	"github.com/Mainginick/market-speculation-hub/internal/market"
	"github.com/Mainginick/market-speculation-hub/internal/middleware"
	"github.com/Mainginick/market-speculation-hub/internal/scheduler"
	"github.com/Mainginick/market-speculation-hub/internal/storage"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY не установлен в .env файле")
	}

	slogger := logger.NewLogger(cfg)
	slog.SetDefault(slogger)

	db, repo, services, store := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/healthz", handlers.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{username}/posts", handler.GetUserPosts).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{postId}", handler.DeletePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/market", handler.GetMarket).Methods(http.MethodGet)

	// local uploads served from the persistent disk
	if localStore, ok := store.(*storage.LocalStorage); ok {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(localStore.Dir()))))
	}

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(slogger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Фоновый рефрешер рынка поднимаем только под флагом - это и есть защита
	// от дублирования расписания между воркерами (флаг включают ровно на одном)
	var refresher *scheduler.Refresher
	if cfg.EnableScheduler {
		refresher = scheduler.NewRefresher(
			market.NewClient(cfg.Market),
			repo.Snapshot,
			cfg.Market.RefreshInterval,
			slogger,
		)
		refresher.Start(ctx)
	} else {
		slogger.Info("Планировщик выключен, снимок рынка обновляется по запросу")
	}

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: handlerChain,
	}

	go func() {
		slogger.Info("Сервер запущен", slog.String("addr", addr), slog.String("db", cfg.DriverName()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	<-ctx.Done()

	// Teardown: stop the refresher first, then drain HTTP
	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("Ошибка при остановке сервера", slog.Any("error", err))
	}

	slogger.Info("Сервер остановлен")
}
