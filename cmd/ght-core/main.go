package main

// @title           GHT Core API
// @version         1.0
// @description     Bible verse lookup API. GHT Core renders Greek and English verse ranges from a word-level concordance.

// @contact.name   GHT Core
// @contact.url    https://github.com/custodia-labs/ght-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/ght-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/ght-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/ght-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/ght-core/internal/adapters/driven/sqlite"
	"github.com/custodia-labs/ght-core/internal/adapters/driving/http"
	"github.com/custodia-labs/ght-core/internal/config"
	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
	"github.com/custodia-labs/ght-core/internal/core/ports/driving"
	"github.com/custodia-labs/ght-core/internal/core/services"
	"github.com/custodia-labs/ght-core/internal/logging"
)

var version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Get run mode from environment (RUN_MODE) or command line arg
	if len(os.Args) > 1 {
		cfg.RunMode = os.Args[1]
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	logger, err := logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Invalid logging configuration: %v", err)
	}

	log.Printf("ght-core %s starting in %s mode", version, cfg.RunMode)

	ctx := context.Background()

	tracks, err := config.LoadTracks(cfg.TracksFile)
	if err != nil {
		log.Fatalf("Failed to load tracks: %v", err)
	}

	store, closeStore, err := openStore(ctx, cfg, tracks, logger)
	if err != nil {
		log.Fatalf("Failed to open concordance store: %v", err)
	}
	defer closeStore()

	if cfg.RunMode == config.RunModeCheck {
		if err := store.Ping(ctx); err != nil {
			log.Fatalf("Store check failed: %v", err)
		}
		log.Printf("Store check passed (%s)", cfg.StoreDriver)
		return
	}

	// Optional Redis range cache
	var cache http.Pinger
	if cfg.CacheEnabled() {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		store = redisadapter.NewCachingWordStore(redisClient, store, cfg.CacheTTL, logger)
		cache = redisPinger{client: redisClient}
		log.Printf("Range cache enabled (ttl=%s)", cfg.CacheTTL)
	}

	lookupService := services.NewLookupService(tracks, store, logger)

	var authService driving.AuthService
	if cfg.AuthEnabled() {
		authService = services.NewAuthService(auth.NewAdapter(cfg.APIJWTSecret), services.AuthConfig{
			ClientID:         cfg.APIClientID,
			ClientSecretHash: cfg.APIClientSecretHash,
			TokenTTL:         cfg.APITokenTTL,
		})
		log.Printf("Bearer auth enabled (client=%s)", cfg.APIClientID)
	} else {
		log.Println("Warning: API_JWT_SECRET not set, API routes are unauthenticated")
	}

	for _, t := range tracks.List() {
		log.Printf("Track %s: %s/%s", t.Name, t.KeyColumn, t.WordColumn)
	}

	server := http.NewServer(http.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        version,
		LookupTimeout:  cfg.LookupTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	}, lookupService, authService, cache, logger)

	log.Printf("API server starting on %s:%d", cfg.Host, cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openStore opens the configured concordance backend
func openStore(ctx context.Context, cfg *config.Config, tracks *domain.TrackSet, logger *slog.Logger) (driven.WordStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		log.Printf("Opening concordance %s...", cfg.ConcordancePath)
		store, err := sqlite.Open(ctx, cfg.ConcordancePath)
		if err != nil {
			return nil, nil, err
		}
		table, err := store.FirstTable(ctx)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		log.Printf("DB OK, first table: %s", table)
		if err := store.CheckTracks(ctx, tracks.List()); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, closer(store, logger), nil

	case config.StorePostgres:
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.Config{
			URL:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
			InitSchema:      cfg.DBInitSchema,
		})
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewWordStore(db)
		if err := store.CheckTracks(ctx, tracks.List()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, closer(db, logger), nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func closer(c io.Closer, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

// redisPinger reports Redis health separately from the store
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}
