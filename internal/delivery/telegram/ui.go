package telegram

import (
	"fmt"
	"slices"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/storage"
)

// targetsPerRow is how many numbered match targets share a keyboard row.
const targetsPerRow = 5

// buildStartKeyboard builds keyboard for the welcome screen.
func buildStartKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnStart, buildCallback(actionStart)),
		),
	)
	return &kb
}

// buildRestartKeyboard builds keyboard for the final screen.
func buildRestartKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRestart, buildCallback(actionRestart)),
		),
	)
	return &kb
}

// buildQuestionKeyboard builds keyboard for the current question. It returns nil
// when there is nothing to press, e.g. a fill-in question with no hints left.
func buildQuestionKeyboard(snap entities.Snapshot, draft storage.Draft) *tgbotapi.InlineKeyboardMarkup {
	q := snap.Current
	if q == nil {
		return nil
	}
	pos := snap.Position

	var rows [][]tgbotapi.InlineKeyboardButton

	switch snap.QuestionState {
	case entities.QuestionAnsweredCorrect:
		label := btnNext
		if snap.IsLast() {
			label = btnFinish
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildPositionCallback(actionNext, pos)),
		))

	case entities.QuestionAnsweredIncorrect:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRetry, buildPositionCallback(actionRetry, pos)),
		))

	default:
		switch q.Kind {
		case entities.KindMultiple:
			rows = append(rows, optionRows(q.Options, pos)...)
		case entities.KindTrueFalse:
			var row []tgbotapi.InlineKeyboardButton
			for i, o := range q.Options {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(o, buildIndexCallback(actionAnswer, pos, i)))
			}
			rows = append(rows, row)
		case entities.KindOrder:
			rows = append(rows, orderRows(q, draft, pos)...)
		case entities.KindMatch:
			rows = append(rows, matchRows(q, draft, pos)...)
		}

		if remaining := len(q.Hints) - snap.HintsRevealed; remaining > 0 {
			label := fmt.Sprintf("💡 Pista (%d/%d)", snap.HintsRevealed+1, len(q.Hints))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, buildPositionCallback(actionHint, pos)),
			))
		}
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func optionRows(options []string, pos int) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, o := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o, buildIndexCallback(actionAnswer, pos, i)),
		))
	}
	return rows
}

// orderRows offers the items not picked yet, then the draft controls.
func orderRows(q *entities.Question, draft storage.Draft, pos int) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, item := range q.Options {
		if slices.Contains(draft.Sequence, item) {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(item, buildIndexCallback(actionOrder, pos, i)),
		))
	}

	complete := len(draft.Sequence) == len(q.Options)
	if controls := draftControls(pos, complete, len(draft.Sequence) > 0); controls != nil {
		rows = append(rows, controls)
	}

	return rows
}

// matchRows offers one button per concept and one numbered button per definition.
func matchRows(q *entities.Question, draft storage.Draft, pos int) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, left := range q.Options {
		label := left
		switch {
		case draft.Left == left:
			label = "👉 " + left
		case draft.Pairs[left] != "":
			label = fmt.Sprintf("%s → %d", left, targetNumber(q.Targets, draft.Pairs[left]))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildIndexCallback(actionLeft, pos, i)),
		))
	}

	if draft.Left != "" {
		var row []tgbotapi.InlineKeyboardButton
		for i := range q.Targets {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(i+1), buildIndexCallback(actionRight, pos, i)))
			if len(row) == targetsPerRow {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	complete := len(draft.Pairs) == len(q.Options)
	if controls := draftControls(pos, complete, len(draft.Pairs) > 0 || draft.Left != ""); controls != nil {
		rows = append(rows, controls)
	}

	return rows
}

func draftControls(pos int, canSubmit, canClear bool) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if canSubmit {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnSubmit, buildPositionCallback(actionSubmit, pos)))
	}
	if canClear {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnClear, buildPositionCallback(actionClear, pos)))
	}
	return row
}

// emptyKeyboard removes the inline keyboard of an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
