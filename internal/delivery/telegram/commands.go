package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/service"
)

// handleStart shows the welcome screen, the current question or the final screen,
// depending on where the session is.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.present(chatID, h.session.Snapshot())
	}
}

// handleRestart discards the current play-through and shows the first question of a new one.
func (h *Handler) handleRestart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.session.Restart(); err != nil {
			return err
		}
		h.drafts.Delete(chatID)

		h.logger.Info("quiz restarted by command", zap.Int64("chat_id", chatID))

		return h.present(chatID, h.session.Snapshot())
	}
}

// handleHint reveals the next hint and redraws the quiz message.
func (h *Handler) handleHint() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.session.RevealHint(); err != nil {
			if text, ok := userMessage(err); ok {
				return h.send(newHTMLMessage(chatID, text))
			}
			return err
		}

		if prev, ok := h.messages.Get(chatID); ok {
			return h.refresh(chatID, prev.MessageID)
		}
		return h.present(chatID, h.session.Snapshot())
	}
}

func (h *Handler) handleStatus() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, formatStatus(h.session.Snapshot())))
	}
}

// handleText treats plain text as the answer to a fill-in question.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		snap := h.session.Snapshot()

		switch {
		case snap.Phase == entities.PhaseNotStarted:
			return h.send(newHTMLMessage(chatID, msgNotStarted))
		case snap.Phase == entities.PhaseCompleted:
			return h.send(newHTMLMessage(chatID, msgGameOver))
		case snap.Current.Kind != entities.KindFillBlank:
			return h.send(newHTMLMessage(chatID, msgUseButtons))
		}

		if _, err := h.session.SubmitAnswer(text); err != nil {
			if msg, ok := userMessage(err); ok {
				return h.send(newHTMLMessage(chatID, msg))
			}
			return err
		}

		return h.present(chatID, h.session.Snapshot())
	}
}

// userMessage maps session errors caused by the user to a reply.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrHintsExhausted):
		return msgHintsExhausted, true
	case errors.Is(err, service.ErrQuestionAnswered):
		return msgAlreadyAnswered, true
	case errors.Is(err, service.ErrEmptyAnswer):
		return msgEmptyAnswer, true
	case errors.Is(err, service.ErrNotInProgress):
		return msgNotStarted, true
	case errors.Is(err, service.ErrNotAnsweredCorrectly),
		errors.Is(err, service.ErrNotAnsweredIncorrectly),
		errors.Is(err, service.ErrAlreadyStarted):
		return msgStaleButton, true
	default:
		return "", false
	}
}
