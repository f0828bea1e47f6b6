package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/config"
	"github.com/AnshRaj112/serenify-journal/internal/database"
	"github.com/AnshRaj112/serenify-journal/internal/handlers"
	"github.com/AnshRaj112/serenify-journal/internal/logger"
	"github.com/AnshRaj112/serenify-journal/internal/middleware"
	"github.com/AnshRaj112/serenify-journal/internal/routes"
	"github.com/AnshRaj112/serenify-journal/internal/services"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		File:       cfg.LogFile,
	})
	defer log.Sync()

	if envErr != nil {
		log.Info("no .env file found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openJournalStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	rdb, err := database.ConnectRedis(ctx, cfg.RedisURI, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer database.DisconnectRedis(rdb)

	insights, err := newInsightProvider(cfg, log)
	if err != nil {
		return err
	}
	journal := services.NewJournalService(store, insights, services.NewCacheService(rdb, cfg.StatsCacheTTL), log)

	r := newRouter(cfg, log, rdb, journal)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("journal backend running",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Environment),
			zap.String("store", cfg.JournalStore),
			zap.Bool("remote_insight", insights.RemoteEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, log *zap.Logger, rdb *redis.Client, journal *services.JournalService) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.RateLimit(rdb, log))

	routes.SetupRoutes(r, routes.Deps{
		Journal:      handlers.NewJournalHandler(journal, log),
		Auth:         middleware.RequireOwner(services.NewSessionStore(rdb), log),
		AnalyzeLimit: middleware.NewIPLimiter(cfg.AnalyzeRatePerMinute).Limit,
	})
	return r
}

// openJournalStore connects the configured backend and returns a close func for it.
func openJournalStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.JournalStore, func(), error) {
	switch cfg.JournalStore {
	case config.StoreMemory:
		log.Warn("using in-memory journal store, entries are lost on restart")
		return services.NewMemoryJournalStore(nil), func() {}, nil

	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.InitPostgresTables(ctx, db); err != nil {
			database.DisconnectPostgres(db)
			return nil, nil, fmt.Errorf("init postgres tables: %w", err)
		}
		return services.NewPostgresJournalStore(db), func() { database.DisconnectPostgres(db) }, nil

	default:
		client, db, err := database.Connect(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := database.EnsureJournalIndexes(ctx, db); err != nil {
			log.Warn("failed to ensure journal indexes", zap.Error(err))
		}
		col := db.Collection(database.JournalCollection)
		return services.NewMongoJournalStore(col), func() { database.Disconnect(client) }, nil
	}
}

func newInsightProvider(cfg *config.Config, log *zap.Logger) (*services.InsightProvider, error) {
	insightCfg := services.InsightConfig{
		Timeout:          cfg.InsightTimeout,
		FailureThreshold: cfg.InsightBreakerFailure,
		Cooldown:         cfg.InsightBreakerCooldown,
	}
	if !cfg.RemoteInsightEnabled() {
		log.Info("OPENAI_API_KEY not set, insights use the local classifier only")
		return services.NewInsightProvider(nil, insightCfg, log), nil
	}

	client, err := services.NewOpenAIInsightClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return services.NewInsightProvider(client, insightCfg, log), nil
}
