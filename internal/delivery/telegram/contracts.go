package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizSession interface {
	Start() error
	Restart() error
	SubmitAnswer(raw string) (bool, error)
	Advance() error
	ResetQuestion() error
	RevealHint() (string, error)
	Snapshot() entities.Snapshot
}

type DraftStorage interface {
	Get(chatID int64, position int) storage.Draft
	Update(chatID int64, position int, fn func(d *storage.Draft)) storage.Draft
	Delete(chatID int64)
}

type MessageStorage interface {
	Store(chatID int64, messageID int)
	Get(chatID int64) (storage.QuizMessage, bool)
	Delete(chatID int64)
}
