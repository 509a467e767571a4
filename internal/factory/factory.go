package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dotgrid/dotsboxes-go/internal/dependencies/clock"
	"github.com/dotgrid/dotsboxes-go/internal/dependencies/random"
	"github.com/dotgrid/dotsboxes-go/internal/services/bot"
	"github.com/dotgrid/dotsboxes-go/internal/services/completion"
	"github.com/dotgrid/dotsboxes-go/internal/services/match"
	"github.com/dotgrid/dotsboxes-go/internal/services/rules"
	"github.com/dotgrid/dotsboxes-go/internal/services/timer"
	"github.com/dotgrid/dotsboxes-go/internal/services/turn"
	"github.com/dotgrid/dotsboxes-go/internal/services/victory"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
	"github.com/dotgrid/dotsboxes-go/internal/storage/memory"
	redisstorage "github.com/dotgrid/dotsboxes-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RulesService      *rules.Service
	CompletionService *completion.Service
	TurnService       *turn.Service
	VictoryService    *victory.Service
	Orchestrator      *match.Orchestrator
	BotService        *bot.Service
	Sweeper           *timer.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SweepInterval is how often the turn sweeper scans active matches
	// If zero, defaults to one second
	SweepInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	sweepInterval := cfg.SweepInterval
	if sweepInterval == 0 {
		sweepInterval = time.Second
	}

	return newWithDependencies(store, clk, rnd, sweepInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, sweepInterval time.Duration, logger *slog.Logger) *App {
	// Create services
	rulesService := rules.New()
	completionService := completion.New()
	turnService := turn.New()
	victoryService := victory.New()
	orchestrator := match.NewOrchestrator(store, rulesService, completionService, turnService, victoryService, clk, logger)
	botService := bot.NewService(orchestrator, bot.NewGreedyStrategy(completionService, rnd), logger)
	sweeper := timer.NewSweeper(store, orchestrator, sweepInterval, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		RulesService:      rulesService,
		CompletionService: completionService,
		TurnService:       turnService,
		VictoryService:    victoryService,
		Orchestrator:      orchestrator,
		BotService:        botService,
		Sweeper:           sweeper,
	}
}
