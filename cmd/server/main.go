package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"salespulse/internal/api"
	"salespulse/internal/cache"
	"salespulse/internal/database"
	"salespulse/internal/graph"
	"salespulse/internal/repo"
	"salespulse/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres()
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var resultCache cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		resultCache = cache.NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
		logger.Info("using redis result cache", "addr", addr)
	} else {
		memory := cache.NewMemory()
		go memory.Janitor(ctx, time.Minute)
		resultCache = memory
		logger.Info("REDIS_ADDR unset, using in-memory result cache")
	}

	orderRepo := repo.NewOrderRepo(db)
	productRepo := repo.NewProductRepo(db)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo, resultCache, logger)
	orderService := service.NewOrderService(orderRepo)

	schema, err := graph.NewSchema(&graph.Resolver{
		Analytics: analyticsService,
		Orders:    orderService,
	})
	if err != nil {
		logger.Error("failed to build schema", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(&api.RouterConfig{
		Schema: &schema,
		DB:     database.NewService(db),
		Logger: logger,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("server running", "addr", server.Addr, "endpoint", "/graphql")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
