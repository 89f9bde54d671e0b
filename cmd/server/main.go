package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pollpulse/api/internal/adapters/handler/http"
	"github.com/pollpulse/api/internal/adapters/repository/postgres"
	"github.com/pollpulse/api/internal/config"
	"github.com/pollpulse/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}
	cfg := config.Load()

	db, err := sqlx.Connect("postgres", cfg.ConnString())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	userRepo := postgres.NewUserRepository(db)

	pollService := services.NewPollService(pollRepo, voteRepo, userRepo, cfg.MaxPageSize)
	userService := services.NewUserService(userRepo, pollRepo, voteRepo)

	pollHandler := http.NewPollHandler(pollService, cfg.DefaultPageSize)
	userHandler := http.NewUserHandler(userService, pollService, cfg.DefaultPageSize)
	handler := http.NewHandler(pollHandler, userHandler, []byte(cfg.JWTSecret))

	server := &stdhttp.Server{Addr: fmt.Sprintf("0.0.0.0:%d", cfg.Port), Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
