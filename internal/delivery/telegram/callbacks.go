package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/service"
	"github.com/aliskhannn/ess-quiz-bot/internal/storage"
)

const (
	toastCorrect   = "✅ Correcte!"
	toastIncorrect = "❌ Incorrecte"
	toastPickLeft  = "Tria primer un concepte."
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	qc, err := parseQuizCallback(cb.Data)
	if err != nil {
		h.logger.Warn("invalid callback data",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
		)
		h.answerCallback(cb.ID, msgStaleButton)
		return
	}

	toast, redraw, err := h.applyCallback(chatID, qc)
	if err != nil {
		if text, ok := userMessage(err); ok {
			toast = text
		} else {
			h.logger.Error("callback failed",
				zap.Int64("chat_id", chatID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
			toast = msgInternalError
		}
	}

	if redraw {
		if err := h.refresh(chatID, messageID); err != nil {
			h.logger.Error("failed to redraw quiz message",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err),
			)
		}
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// applyCallback performs the pressed action. It returns a short notice for the
// user and whether the quiz message must be redrawn.
func (h *Handler) applyCallback(chatID int64, qc quizCallback) (string, bool, error) {
	switch qc.Action {
	case actionStart:
		if h.session.Snapshot().Phase != entities.PhaseNotStarted {
			return msgStaleButton, true, nil
		}
		if err := h.session.Start(); err != nil {
			return "", false, err
		}
		h.drafts.Delete(chatID)
		return "", true, nil

	case actionRestart:
		if err := h.session.Restart(); err != nil {
			return "", false, err
		}
		h.drafts.Delete(chatID)
		return "", true, nil
	}

	snap := h.session.Snapshot()
	if snap.Phase != entities.PhaseInProgress || qc.Position != snap.Position || snap.Current == nil {
		return msgStaleButton, false, nil
	}
	q := snap.Current

	switch qc.Action {
	case actionAnswer:
		if qc.Index >= len(q.Options) {
			return msgStaleButton, false, nil
		}
		return h.submit(q.Options[qc.Index])

	case actionOrder:
		if qc.Index >= len(q.Options) || snap.QuestionState != entities.QuestionUnanswered {
			return msgStaleButton, false, nil
		}
		item := q.Options[qc.Index]
		h.drafts.Update(chatID, qc.Position, func(d *storage.Draft) { d.AddItem(item) })
		return "", true, nil

	case actionLeft:
		if qc.Index >= len(q.Options) || snap.QuestionState != entities.QuestionUnanswered {
			return msgStaleButton, false, nil
		}
		left := q.Options[qc.Index]
		h.drafts.Update(chatID, qc.Position, func(d *storage.Draft) { d.SelectLeft(left) })
		return "", true, nil

	case actionRight:
		if qc.Index >= len(q.Targets) || snap.QuestionState != entities.QuestionUnanswered {
			return msgStaleButton, false, nil
		}
		right := q.Targets[qc.Index]
		paired := false
		h.drafts.Update(chatID, qc.Position, func(d *storage.Draft) { paired = d.PairWith(right) })
		if !paired {
			return toastPickLeft, false, nil
		}
		return "", true, nil

	case actionSubmit:
		draft := h.drafts.Get(chatID, qc.Position)
		switch q.Kind {
		case entities.KindOrder:
			if len(draft.Sequence) != len(q.Options) {
				return msgIncompleteDraft, false, nil
			}
			return h.submit(service.EncodeOrderAnswer(draft.Sequence))
		case entities.KindMatch:
			if len(draft.Pairs) != len(q.Options) {
				return msgIncompleteDraft, false, nil
			}
			return h.submit(service.EncodeMatchAnswer(draft.Pairs))
		default:
			return msgStaleButton, false, nil
		}

	case actionClear:
		h.drafts.Delete(chatID)
		return "", true, nil

	case actionHint:
		if _, err := h.session.RevealHint(); err != nil {
			return "", false, err
		}
		return "", true, nil

	case actionNext:
		if err := h.session.Advance(); err != nil {
			return "", false, err
		}
		h.drafts.Delete(chatID)
		return "", true, nil

	case actionRetry:
		if err := h.session.ResetQuestion(); err != nil {
			return "", false, err
		}
		h.drafts.Delete(chatID)
		return "", true, nil
	}

	return msgStaleButton, false, nil
}

func (h *Handler) submit(raw string) (string, bool, error) {
	correct, err := h.session.SubmitAnswer(raw)
	if err != nil {
		return "", false, err
	}
	if correct {
		return toastCorrect, true, nil
	}
	return toastIncorrect, true, nil
}
