package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/service"
)

var _ service.CompletionNotifier = (*Handler)(nil)

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	session  QuizSession
	drafts   DraftStorage
	messages MessageStorage

	mu          sync.Mutex
	ownerChatID int64 // 0 until the first chat claims the session
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	session QuizSession,
	drafts DraftStorage,
	messages MessageStorage,
	ownerChatID int64,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		session:     session,
		drafts:      drafts,
		messages:    messages,
		ownerChatID: ownerChatID,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

// NotifyTimeExpired shows the final screen to the owner when the time budget runs out.
func (h *Handler) NotifyTimeExpired(snap entities.Snapshot) {
	chatID := h.owner()
	if chatID == 0 {
		return
	}

	h.logger.Info("time budget exhausted",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", snap.ID),
		zap.Int("score", snap.Score),
	)

	h.drafts.Delete(chatID)
	if err := h.present(chatID, snap); err != nil {
		h.logger.Error("failed to send time expiry summary",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		if update.CallbackQuery.Message == nil {
			h.answerCallback(update.CallbackQuery.ID, msgStaleButton)
			return
		}
		if !h.authorize(update.CallbackQuery.Message.Chat.ID) {
			h.answerCallback(update.CallbackQuery.ID, msgNotOwner)
			return
		}
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	if !h.authorize(chatID) {
		_ = h.send(newHTMLMessage(chatID, msgNotOwner))
		return
	}

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

		case "restart":
			_ = h.withErrorHandling(h.handleRestart())(ctx, chatID)

		case "hint":
			_ = h.withErrorHandling(h.handleHint())(ctx, chatID)

		case "status":
			_ = h.withErrorHandling(h.handleStatus())(ctx, chatID)

		case "help":
			_ = h.send(newHTMLMessage(chatID, msgHelp))

		default:
			_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.handleText(update.Message.Text))(ctx, chatID)
}

// authorize binds the session to the first chat when no owner is configured
// and reports whether chatID may play.
func (h *Handler) authorize(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ownerChatID == 0 {
		h.ownerChatID = chatID
		h.logger.Info("quiz bound to chat", zap.Int64("chat_id", chatID))
		return true
	}

	return h.ownerChatID == chatID
}

func (h *Handler) owner() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ownerChatID
}

// render returns the text and keyboard for a session state.
func (h *Handler) render(chatID int64, snap entities.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch snap.Phase {
	case entities.PhaseNotStarted:
		return msgWelcome, buildStartKeyboard()
	case entities.PhaseCompleted:
		return formatSummary(service.Summarize(snap)), buildRestartKeyboard()
	}

	draft := h.drafts.Get(chatID, snap.Position)
	return formatQuestion(snap, draft), buildQuestionKeyboard(snap, draft)
}

// present sends snap as a new quiz message. The keyboard of the previous quiz
// message is removed so only one message stays interactive.
func (h *Handler) present(chatID int64, snap entities.Snapshot) error {
	text, kb := h.render(chatID, snap)

	h.stripPrevious(chatID, 0)

	msg := newHTMLMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}
	h.messages.Store(chatID, sent.MessageID)

	return nil
}

// refresh redraws the current session state in place of messageID.
func (h *Handler) refresh(chatID int64, messageID int) error {
	text, kb := h.render(chatID, h.session.Snapshot())

	h.stripPrevious(chatID, messageID)

	_, err := h.bot.Send(newHTMLEdit(chatID, messageID, text, kb))
	if err != nil && !isNotModified(err) {
		return err
	}
	h.messages.Store(chatID, messageID)

	return nil
}

// stripPrevious removes the keyboard of the stored quiz message unless it is keep.
func (h *Handler) stripPrevious(chatID int64, keep int) {
	prev, ok := h.messages.Get(chatID)
	if !ok || prev.MessageID == keep {
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, prev.MessageID, emptyKeyboard())
	if _, err := h.bot.Request(edit); err != nil && !isNotModified(err) {
		h.logger.Debug("failed to strip previous keyboard",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", prev.MessageID),
			zap.Error(err),
		)
	}
	h.messages.Delete(chatID)
}

func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	_ = h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
