package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashcards/internal/config"
	"flashcards/internal/domain"
	"flashcards/internal/handler"
	"flashcards/internal/repository"
	"flashcards/internal/repository/csvfile"
	"flashcards/internal/repository/postgres"
	"flashcards/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Flashcards Bot", zap.String("backend", cfg.Storage.Backend))

	// Initialize deck repository
	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open vocabulary storage", zap.Error(err))
	}
	defer closeRepo()

	// Load the deck
	store := service.NewVocabularyStore(repo, logger)
	if _, err := store.Load(); err != nil {
		if errors.Is(err, domain.ErrStoreLoad) && cfg.Storage.Backend == config.BackendCSV {
			logger.Fatal("Failed to load vocabulary, set VOCAB_CREATE_IF_MISSING=true to start with an empty deck",
				zap.String("path", cfg.Storage.Path),
				zap.Error(err),
			)
		}
		logger.Fatal("Failed to load vocabulary", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(cfg.BotPassword)
	editor := service.NewDeckEditor(store)

	// Initialize Telegram bot; updates are handled one at a time
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: 10 * time.Second},
		Synchronous: true,
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, store, editor, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// newLogger builds a production logger at the configured level
func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atomicLevel
	return zapConfig.Build()
}

// openRepository returns the configured deck backend and a function releasing it
func openRepository(cfg *config.Config, logger *zap.Logger) (repository.DeckRepository, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database migrations completed")

		return postgres.NewDeckRepo(db), func() { db.Close() }, nil

	default:
		deck := csvfile.NewDeckFile(cfg.Storage.Path)
		if cfg.Storage.CreateIfMissing {
			created, err := deck.Init()
			if err != nil {
				return nil, nil, err
			}
			if created {
				logger.Info("Created empty vocabulary file", zap.String("path", cfg.Storage.Path))
			}
		}
		return deck, func() {}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// A single writer rewrites the whole table
		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
