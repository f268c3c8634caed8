// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ess-quiz-bot/internal/service"
	"github.com/aliskhannn/ess-quiz-bot/internal/storage"
)

// User-facing messages.
const (
	msgWelcome = "<b>Joc de l'Economia Social i Solidària</b>\n\n" +
		"<b>Característiques del joc:</b>\n" +
		"• Preguntes de diferents tipus (test, vertader/fals, relacionar, completar, ordenar)\n" +
		"• 30 minuts de temps límit\n" +
		"• Feedback immediat amb explicacions\n" +
		"• No pots avançar fins encertar cada pregunta\n" +
		"• Puntuació basada en encerts i velocitat\n" +
		"• Sistema de pistes si necessites ajuda"
	msgHelp = "<b>Ordres</b>\n\n" +
		"/start - començar el joc o veure la pregunta actual\n" +
		"/restart - tornar a començar des de zero\n" +
		"/hint - mostrar la següent pista\n" +
		"/status - puntuació i temps restant\n" +
		"/help - aquesta ajuda\n\n" +
		"Respon amb els botons. A les preguntes per completar, escriu la paraula en un missatge."
	msgNotOwner         = "Aquest joc ja s'està jugant en un altre xat."
	msgNotStarted       = "Encara no has començat. Envia /start per jugar."
	msgUseButtons       = "Respon amb els botons de la pregunta."
	msgStaleButton      = "Aquest botó ja no és vàlid."
	msgHintsExhausted   = "No queden més pistes."
	msgAlreadyAnswered  = "Ja has respost aquesta pregunta."
	msgEmptyAnswer      = "Escriu una resposta."
	msgIncompleteDraft  = "Encara no has completat la resposta."
	msgTimeExpired      = "⏰ S'ha acabat el temps!"
	msgGameOver         = "El joc ha acabat. Prem «Torna a jugar» per començar de nou."
	msgInternalError    = "Alguna cosa ha anat malament. Torna-ho a provar més tard."
	msgUnknownCommand   = "Ordre desconeguda. Envia /help per veure les ordres."
	msgRetryGeneric     = "Prova-ho de nou amb l'ajuda de les pistes."
	msgRetryMatch       = "Les connexions no són correctes. Prova de nou revisant les definicions."
	msgFillBlankTip     = "💡 Consell: Escriu la paraula que millor completi la frase."
	msgOrderTip         = "Prem els elements en l'ordre correcte."
	msgMatchTip         = "Tria un concepte i després el número de la seva definició."
	msgMovingOn         = "Prem «Següent» per continuar."
	msgLastQuestionDone = "Has encertat l'última pregunta! Prem «Finalitza» per veure el resum."
)

// Button labels.
const (
	btnStart   = "▶️ Començar el joc"
	btnRestart = "🔄 Torna a jugar"
	btnNext    = "Següent ➡️"
	btnFinish  = "🏁 Finalitza"
	btnRetry   = "🔄 Tornar a provar"
	btnSubmit  = "✅ Comprova"
	btnClear   = "🗑 Esborra"
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func categoryName(c entities.Category) string {
	switch c {
	case entities.CategorySA1:
		return "SA1: Economia Social"
	case entities.CategorySA2:
		return "SA2: Cooperatives"
	case entities.CategorySA4:
		return "SA4: Gestió d'Equips"
	default:
		return string(c)
	}
}

// formatQuestion renders the current question with its draft, hints and feedback.
func formatQuestion(snap entities.Snapshot, draft storage.Draft) string {
	q := snap.Current
	if q == nil {
		return msgNotStarted
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>Pregunta %d/%d</b> · %s\n", snap.Position+1, snap.Total, esc(categoryName(q.Category)))
	fmt.Fprintf(&sb, "⏱ %s · ⭐ %d punts · ❌ %d errors\n\n",
		service.FormatClock(snap.RemainingTime()), snap.Score, snap.Mistakes)
	sb.WriteString("<b>" + esc(q.Prompt) + "</b>")

	unanswered := snap.QuestionState == entities.QuestionUnanswered

	switch q.Kind {
	case entities.KindMultiple:
		sb.WriteString("\n")
		for _, o := range q.Options {
			sb.WriteString("\n• " + esc(o))
		}
	case entities.KindFillBlank:
		if unanswered {
			sb.WriteString("\n\n<i>" + esc(msgFillBlankTip) + "</i>")
		}
	case entities.KindOrder:
		writeOrderDraft(&sb, draft, unanswered)
	case entities.KindMatch:
		writeMatchDraft(&sb, q, draft, unanswered)
	}

	for i, h := range snap.VisibleHints() {
		fmt.Fprintf(&sb, "\n\n💡 <b>Pista %d:</b> %s", i+1, esc(h))
	}

	switch snap.QuestionState {
	case entities.QuestionAnsweredCorrect:
		sb.WriteString("\n\n✅ <b>Correcte!</b>\n" + esc(q.Feedback))
		if snap.IsLast() {
			sb.WriteString("\n\n<i>" + esc(msgLastQuestionDone) + "</i>")
		} else {
			sb.WriteString("\n\n<i>" + esc(msgMovingOn) + "</i>")
		}
	case entities.QuestionAnsweredIncorrect:
		retry := msgRetryGeneric
		if q.Kind == entities.KindMatch {
			retry = msgRetryMatch
		}
		if last := lastAnswer(snap); last != "" && q.Kind == entities.KindFillBlank {
			sb.WriteString("\n\nLa teva resposta: <i>" + esc(last) + "</i>")
		}
		sb.WriteString("\n\n❌ <b>Incorrecte</b>\n" + esc(retry))
	}

	return sb.String()
}

func writeOrderDraft(sb *strings.Builder, draft storage.Draft, unanswered bool) {
	if unanswered {
		sb.WriteString("\n\n<i>" + esc(msgOrderTip) + "</i>")
	}
	if len(draft.Sequence) == 0 {
		return
	}
	sb.WriteString("\n\n<b>La teva ordenació:</b>")
	for i, item := range draft.Sequence {
		fmt.Fprintf(sb, "\n%d. %s", i+1, esc(item))
	}
}

func writeMatchDraft(sb *strings.Builder, q *entities.Question, draft storage.Draft, unanswered bool) {
	sb.WriteString("\n\n<b>Definicions:</b>")
	for i, t := range q.Targets {
		fmt.Fprintf(sb, "\n%d. %s", i+1, esc(t))
	}

	if unanswered {
		sb.WriteString("\n\n<i>" + esc(msgMatchTip) + "</i>")
	}

	if len(draft.Pairs) > 0 {
		sb.WriteString("\n\n<b>Les teves connexions:</b>")
		for _, left := range q.Options {
			if right, ok := draft.Pairs[left]; ok {
				fmt.Fprintf(sb, "\n%s → %d", esc(left), targetNumber(q.Targets, right))
			}
		}
	}

	if draft.Left != "" {
		sb.WriteString("\n\n👉 Tria la definició per a «" + esc(draft.Left) + "»")
	}
}

// targetNumber returns the 1-based display number of a target, 0 if unknown.
func targetNumber(targets []string, target string) int {
	for i, t := range targets {
		if t == target {
			return i + 1
		}
	}
	return 0
}

func lastAnswer(snap entities.Snapshot) string {
	if snap.Position < len(snap.AnswerLog) {
		return snap.AnswerLog[snap.Position]
	}
	return ""
}

// formatStatus renders the /status reply.
func formatStatus(snap entities.Snapshot) string {
	switch snap.Phase {
	case entities.PhaseNotStarted:
		return msgNotStarted
	case entities.PhaseCompleted:
		return formatSummary(service.Summarize(snap))
	}

	return fmt.Sprintf(
		"<b>Estat del joc</b>\n\nPregunta %d/%d\n⭐ Puntuació: %d\n❌ Errors: %d\n⏱ Temps restant: %s",
		snap.Position+1, snap.Total, snap.Score, snap.Mistakes, service.FormatClock(snap.RemainingTime()),
	)
}

// formatSummary renders the final screen.
func formatSummary(sum entities.Summary) string {
	var sb strings.Builder

	if sum.Reason == entities.CompletionTimeExpired {
		sb.WriteString(msgTimeExpired + "\n\n")
	} else {
		fmt.Fprintf(&sb, "🏆 <b>Felicitats!</b>\nHas completat totes les %d preguntes!\n\n", sum.Total)
	}

	sb.WriteString("<b>Resum del Joc</b>\n")
	fmt.Fprintf(&sb, "⭐ Puntuació: <b>%d</b> punts totals\n", sum.Score)
	fmt.Fprintf(&sb, "⏱ Temps: <b>%s</b>\n", service.FormatClock(sum.Elapsed))
	fmt.Fprintf(&sb, "❌ Errors: <b>%d</b> respostes errònies\n", sum.Mistakes)
	fmt.Fprintf(&sb, "✅ Encerts: <b>%d/%d</b> (%d%%)\n", sum.Correct, sum.Total, sum.Accuracy)

	if len(sum.Categories) > 0 {
		sb.WriteString("\n<b>Resum per Situació d'Aprenentatge</b>\n")
		for _, c := range sum.Categories {
			fmt.Fprintf(&sb, "• %s: %d/%d\n", esc(categoryName(c.Category)), c.Correct, c.Total)
		}
	}

	sb.WriteString("\n" + esc(mistakesMessage(sum.MistakesTier)))
	sb.WriteString("\n" + esc(accuracyMessage(sum.AccuracyTier)))

	return sb.String()
}

func mistakesMessage(t entities.MistakesTier) string {
	switch t {
	case entities.MistakesPerfect:
		return "Perfecte! Has respost totes les preguntes sense errors!"
	case entities.MistakesFew:
		return "Excel·lent! Molt pocs errors!"
	case entities.MistakesSome:
		return "Molt bé! Has completat el joc amb èxit!"
	default:
		return "Enhorabona! Has completat totes les preguntes!"
	}
}

func accuracyMessage(t entities.AccuracyTier) string {
	switch t {
	case entities.AccuracyExcellent:
		return "Excel·lent! Domines molt bé els continguts de l'ESS!"
	case entities.AccuracyGood:
		return "Molt bé! Tens una comprensió sòlida dels conceptes."
	case entities.AccuracyFair:
		return "Bé! Hi ha alguns conceptes que pots repassar."
	default:
		return "Continua estudiant! Et recomano revisar els materials de les SA."
	}
}
