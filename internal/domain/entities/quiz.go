package entities

import "time"

// Phase is the lifecycle state of a quiz session.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// QuestionState is the sub-state of the current question while a session is in progress.
type QuestionState string

const (
	QuestionUnanswered        QuestionState = "unanswered"
	QuestionAnsweredCorrect   QuestionState = "answered_correct"
	QuestionAnsweredIncorrect QuestionState = "answered_incorrect"
)

// CompletionReason tells why a session ended.
type CompletionReason string

const (
	CompletionNone        CompletionReason = ""
	CompletionFinished    CompletionReason = "finished"     // last question answered and advanced
	CompletionTimeExpired CompletionReason = "time_expired" // time budget exhausted
)

// QuestionResult is one entry of the result log.
type QuestionResult struct {
	QuestionID int           // id of the answered question
	Category   Category      // category of the answered question
	Correct    bool          // whether the logged submission was correct
	TimeSpent  time.Duration // time between the question being presented and the submission
	HintsUsed  int           // hints revealed at submission time
}

// Snapshot is a read-only copy of a session's state, handed to the view layer.
type Snapshot struct {
	ID               string
	Phase            Phase
	Position         int
	Total            int
	Current          *Question // nil when the session has not started
	QuestionState    QuestionState
	Score            int
	Mistakes         int
	HintsRevealed    int
	HintVisible      bool
	Elapsed          int // seconds
	TimeBudget       int // seconds
	AnswerLog        []string
	Results          []QuestionResult
	CategoryTotals   map[Category]int // questions per category in the working set
	Completed        bool
	CompletionReason CompletionReason
	StartedAt        time.Time
}

// RemainingTime returns the seconds left before the time budget is exhausted.
func (s Snapshot) RemainingTime() int {
	if s.Elapsed >= s.TimeBudget {
		return 0
	}
	return s.TimeBudget - s.Elapsed
}

// VisibleHints returns the hints revealed so far for the current question.
// Nothing is returned while the hint panel is hidden.
func (s Snapshot) VisibleHints() []string {
	if s.Current == nil || !s.HintVisible {
		return nil
	}
	n := min(s.HintsRevealed, len(s.Current.Hints))
	return s.Current.Hints[:n]
}

// IsLast reports whether the current question is the last of the working set.
func (s Snapshot) IsLast() bool {
	return s.Total > 0 && s.Position == s.Total-1
}
