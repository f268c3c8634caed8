package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/config"
	"github.com/aliskhannn/ess-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/ess-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/ess-quiz-bot/internal/repository"
)

func main() {
	var (
		bankPath     string
		migrationDir string
		runMigrate   bool
	)
	flag.StringVar(&bankPath, "bank", "assets/data/questions.json", "Path to the JSON question bank")
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.BoolVar(&runMigrate, "migrate", false, "Apply migrations before seeding")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.LoadDB()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if runMigrate {
		if err := migrateUp(migrationDir, db.URL); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("migrations applied", zap.String("path", migrationDir))
	}

	// Load and validate the bank before touching the database.
	bank, err := repository.NewQuestionRepository(bankPath)
	if err != nil {
		logger.Fatal("failed to load question bank", zap.String("path", bankPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, db.URL, postgres.PoolConfig{
		MaxConns:        int32(db.MaxConnections),
		MaxConnLifetime: db.MaxConnLifetime,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	transactor := postgres.NewTransactor(pool)
	err = transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		questions := pgrepo.NewQuestionRepository(tx)
		for _, q := range bank.GetAll() {
			if err := questions.Upsert(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Fatal("failed to seed questions", zap.Error(err))
	}

	logger.Info("question bank seeded", zap.Int("questions", bank.Len()))
}

func migrateUp(dir, dbURL string) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", dir), dbURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("up: %w", err)
	}

	return nil
}
