package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/config"
	"github.com/aliskhannn/ess-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/ess-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/ess-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/ess-quiz-bot/internal/logger"
	"github.com/aliskhannn/ess-quiz-bot/internal/repository"
	"github.com/aliskhannn/ess-quiz-bot/internal/service"
	"github.com/aliskhannn/ess-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bank, err := loadBank(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to load question bank",
			zap.String("source", cfg.Quiz.BankSource),
			zap.Error(err),
		)
	}
	lg.Info("question bank loaded",
		zap.String("source", cfg.Quiz.BankSource),
		zap.Int("questions", bank.Len()),
	)

	session := service.NewQuizSession(bank,
		service.WithLogger(lg.Named("session")),
		service.WithTimer(service.NewCronTimer(lg.Named("timer"))),
		service.WithTimeBudget(cfg.Quiz.TimeBudget),
		service.WithShuffler(service.NewShuffler(cfg.Quiz.Seed)),
		service.WithScorer(service.NewScorer(service.ScoringConfig{
			Base:          cfg.Scoring.Base,
			HintPenalty:   cfg.Scoring.HintPenalty,
			SecondPenalty: cfg.Scoring.SecondPenalty,
			Floor:         cfg.Scoring.Floor,
			WrongPenalty:  cfg.Scoring.WrongPenalty,
		})),
	)
	defer session.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Començar el joc o veure la pregunta actual",
		},
		{
			Command:     "restart",
			Description: "Tornar a començar",
		},
		{
			Command:     "hint",
			Description: "Mostrar una pista",
		},
		{
			Command:     "status",
			Description: "Puntuació i temps restant",
		},
		{
			Command:     "help",
			Description: "Ajuda",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		session,
		storage.NewDraftStorage(),
		storage.NewMessageStorage(),
		cfg.Telegram.ChatID,
	)
	session.SetNotifier(handler)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

// loadBank reads the question bank from the configured source.
func loadBank(ctx context.Context, cfg *config.Config) (*repository.QuestionRepository, error) {
	if cfg.Quiz.BankSource != config.BankSourcePostgres {
		return repository.NewQuestionRepository(cfg.Quiz.BankPath)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	questions, err := pgrepo.NewQuestionRepository(pool).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return repository.NewQuestionRepositoryFromQuestions(questions)
}
