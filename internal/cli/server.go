package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/config"
	"mushroom-trivia/internal/infra/memory"
	pginfra "mushroom-trivia/internal/infra/postgres"
	redisinfra "mushroom-trivia/internal/infra/redis"
	transport "mushroom-trivia/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	cacheTTL := config.TTLDuration(cfg.Trivia.CacheTTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Trivia.SessionTTL, 30*time.Minute)

	var (
		characters app.CharacterRepository
		questions  app.QuestionRepository
		scores     app.HighScoreRepository
		source     app.QuestionSource
	)
	if cfg.Postgres.URL != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		characters = pginfra.NewCharacterRepository(db)
		questions = pginfra.NewQuestionRepository(db)
		scores = pginfra.NewHighScoreRepository(db)

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		loader := pginfra.NewQuestionLoader(pool)
		if redisClient != nil {
			source = redisinfra.NewQuestionCache(redisClient, loader, cacheTTL)
		} else {
			source = memory.NewQuestionCache(loader, cacheTTL)
		}
	} else {
		// No database configured: run fully in memory with sample content so
		// the service is playable out of the box.
		logger.Warn("postgres not configured, using in-memory storage with sample data")
		memCharacters := memory.NewCharacterRepository()
		memQuestions := memory.NewQuestionRepository()
		for _, c := range sampleCharacters() {
			character := c
			if err := memCharacters.Create(ctx, &character); err != nil {
				return err
			}
		}
		for _, q := range sampleQuestions() {
			question := q
			if err := memQuestions.Create(ctx, &question); err != nil {
				return err
			}
		}
		characters = memCharacters
		questions = memQuestions
		scores = memory.NewHighScoreRepository()
		source = memory.NewQuestionCache(memory.NewRepositoryLoader(memQuestions), cacheTTL)
	}

	var sessions app.SessionStore
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	handler := transport.NewHandler(
		app.NewGameService(source, sessions, scores, cfg.Trivia.PoolSize),
		app.NewCharacterService(characters),
		app.NewQuestionService(questions),
		app.NewHighScoreService(scores),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(handler, cfg.Admin.Token),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting trivia service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
