package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/factory"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	pgstorage "github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/postgres"
	redisstorage "github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/redis"
)

func main() {
	// .env is optional, environment variables win
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		GameConfig:  gameConfigFromEnv(logger),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		dsn := os.Getenv("POSTGRES_DSN")
		if dsn == "" {
			logger.Error("POSTGRES_DSN required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = dsn
		cfg.PostgresConfig = &pgCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background loops: auto-finish reaction and SSE broadcaster
	app.Start(ctx)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		GameConfig:     app.GameConfig,
		HubManager:     app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(router, serverConfig, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// gameConfigFromEnv reads table rule overrides from the environment,
// falling back to the defaults for anything unset
func gameConfigFromEnv(logger *slog.Logger) model.GameConfig {
	cfg := model.DefaultGameConfig()

	if v := os.Getenv("TABLE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TableCapacity = n
		} else {
			logger.Warn("ignoring invalid TABLE_CAPACITY", slog.String("value", v))
		}
	}
	if v := os.Getenv("PARTICIPATION_COST"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			if n, err := model.NumberFromFloat(f); err == nil {
				cfg.ParticipationCost = model.Credit(n)
			}
		} else {
			logger.Warn("ignoring invalid PARTICIPATION_COST", slog.String("value", v))
		}
	}

	return cfg
}
