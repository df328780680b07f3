package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"usertables-generator/cmd/api/infrastructure"
	"usertables-generator/internal/adapter/db/sqlstore"
	ginhandler "usertables-generator/internal/adapter/gin/handler"
	"usertables-generator/internal/adapter/gin/middleware"
	"usertables-generator/internal/adapter/randomuser"
	"usertables-generator/internal/adapter/resource"
	"usertables-generator/internal/config"
	"usertables-generator/internal/usecase/generator"
	"usertables-generator/internal/usecase/user"
	"usertables-generator/pkg/inn"
	redisclient "usertables-generator/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Store       *sqlstore.UserStore // nil when persistence is disabled
	Generator   generator.Generator
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	c, err := NewGeneratorContainer(cfg, l)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	c.RedisClient = rdb

	// Initialize use case
	var lister user.Lister
	if c.Store != nil {
		lister = c.Store
	}
	c.UserUC = user.New(c.Generator, lister, l)

	// Initialize rate limiter
	limiterConfig := middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstCapacity:     cfg.RateLimit.BurstCapacity,
		Enabled:           cfg.RateLimit.Enabled,
	}
	if rdb != nil {
		c.RateLimiter = middleware.NewRateLimiter(rdb.Client, limiterConfig, l)
	} else {
		c.RateLimiter = middleware.NewRateLimiter(nil, limiterConfig, l)
	}

	// Initialize Gin handler
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// NewGeneratorContainer initializes the store and the configured generator
// only. It is what the one-shot CLI needs.
func NewGeneratorContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	c.initStore(l)

	gen, err := NewGenerator(cfg, c.sink(), l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	c.Generator = gen

	return c, nil
}

// initStore opens the database and prepares the users table. Any failure
// is logged and leaves persistence disabled.
func (c *Container) initStore(l *zap.Logger) {
	db, err := infrastructure.NewDatabase(c.Config, l)
	if err != nil {
		if errors.Is(err, infrastructure.ErrPersistenceDisabled) {
			l.Info("persistence disabled by configuration")
		} else {
			l.Warn("database unavailable, persistence disabled", zap.Error(err))
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := sqlstore.NewUserStore(db, l)
	if err := store.EnsureTable(ctx); err != nil {
		l.Warn("failed to prepare users table, persistence disabled", zap.Error(err))
		_ = infrastructure.CloseDatabase(db)
		return
	}

	c.DB = db
	c.Store = store
}

// sink returns the store as a generator.Sink, or a nil interface.
func (c *Container) sink() generator.Sink {
	if c.Store == nil {
		return nil
	}
	return c.Store
}

// NewGenerator builds the generator selected by GENERATOR_SOURCE. sink may be nil.
func NewGenerator(cfg *config.Config, sink generator.Sink, l *zap.Logger) (generator.Generator, error) {
	resources := resource.NewOsReader(cfg.App.ResourceDir, l)
	ids := inn.NewGenerator()

	switch cfg.App.GeneratorSource {
	case generator.SourceLocal:
		gen, err := generator.NewLocalGenerator(resources, ids, sink, l)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case generator.SourceAPI, "":
		httpClient := &http.Client{Timeout: time.Duration(cfg.App.APITimeoutSeconds) * time.Second}
		client := randomuser.NewClient(httpClient, cfg.App.APIURL, l)
		gen, err := generator.NewAPIGenerator(client, randomuser.NewParser(), resources, ids, sink, l)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown generator source %q", cfg.App.GeneratorSource)
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
