package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/api/sse"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/clock"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/random"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/events"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/game"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/player"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/round"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/secretnumber"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/memory"
	pgstorage "github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/postgres"
	redisstorage "github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Event plumbing
	Bus         *events.Bus
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	// Services
	SecretService   *secretnumber.Service
	PlayerService   *player.Service
	RoundController *round.Controller
	GameController  *game.Controller

	// GameConfig holds the table rules the app was wired with
	GameConfig model.GameConfig
}

// Config holds configuration for the application factory
type Config struct {
	// GameConfig holds the table rules (optional)
	// If zero value, defaults to model.DefaultGameConfig()
	GameConfig model.GameConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	gameCfg := cfg.GameConfig
	if gameCfg.TableCapacity == 0 {
		gameCfg = model.DefaultGameConfig()
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gameCfg model.GameConfig, logger *slog.Logger) *App {
	bus := events.NewBus(logger)
	secretService := secretnumber.New(gameCfg, rnd)
	playerService := player.New(store, clk, rnd, logger)
	roundController := round.NewController(store, secretService, bus, gameCfg, clk, rnd, logger)
	gameController := game.NewController(playerService, roundController, secretService, logger)

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(bus, hubManager, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Bus:             bus,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
		SecretService:   secretService,
		PlayerService:   playerService,
		RoundController: roundController,
		GameController:  gameController,
		GameConfig:      gameCfg,
	}
}

// Start launches the app's background loops: the auto-finish reaction
// and the SSE broadcaster. They run until ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.RoundController.StartAutoFinish(ctx)
	go a.Broadcaster.Run(ctx)
}

// Close releases app resources
func (a *App) Close() {
	a.Bus.Close()
}
