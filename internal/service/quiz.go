package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

// DefaultTimeBudget is the time allowed for a whole play-through.
const DefaultTimeBudget = 30 * time.Minute

var (
	ErrEmptyBank              = errors.New("question bank is empty")
	ErrAlreadyStarted         = errors.New("quiz session already started")
	ErrNotInProgress          = errors.New("quiz session is not in progress")
	ErrQuestionAnswered       = errors.New("current question is already answered")
	ErrNotAnsweredCorrectly   = errors.New("current question has not been answered correctly")
	ErrNotAnsweredIncorrectly = errors.New("current question has no incorrect answer to retry")
	ErrHintsExhausted         = errors.New("no more hints for the current question")
	ErrEmptyAnswer            = errors.New("answer is empty")
)

// QuizSessionOption customizes a QuizSession.
type QuizSessionOption func(*QuizSession)

// WithClock replaces the wall clock used to measure time spent per question.
func WithClock(now func() time.Time) QuizSessionOption {
	return func(s *QuizSession) { s.now = now }
}

// WithTimer sets the timer that drives Tick once per second.
func WithTimer(t Timer) QuizSessionOption {
	return func(s *QuizSession) { s.timer = t }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) QuizSessionOption {
	return func(s *QuizSession) { s.logger = l }
}

// WithTimeBudget sets the time after which the session is completed regardless of progress.
func WithTimeBudget(d time.Duration) QuizSessionOption {
	return func(s *QuizSession) { s.timeBudget = max(int(d/time.Second), 1) }
}

// WithShuffler sets the shuffler, typically a seeded one.
func WithShuffler(sh *Shuffler) QuizSessionOption {
	return func(s *QuizSession) { s.shuffler = sh }
}

// WithScorer sets the scorer.
func WithScorer(sc *Scorer) QuizSessionOption {
	return func(s *QuizSession) { s.scorer = sc }
}

// QuizSession is the quiz state machine for one player.
// A session goes NotStarted -> InProgress -> Completed; Restart replaces the play-through
// entirely. All methods are safe for concurrent use and reject calls that are not valid in
// the current state without changing anything.
type QuizSession struct {
	mu sync.Mutex

	bank      QuestionBank
	shuffler  *Shuffler
	validator *AnswerValidator
	scorer    *Scorer
	timer     Timer
	now       func() time.Time
	logger    *zap.Logger
	notifier  CompletionNotifier

	// generation is bumped on every (re)start; ticks of older generations are dropped.
	generation uint64

	id                string
	phase             entities.Phase
	workingSet        []entities.Question
	position          int
	questionState     entities.QuestionState
	score             int
	mistakes          int
	hintsRevealed     int
	hintVisible       bool
	elapsed           int
	timeBudget        int
	answerLog         []string
	results           []entities.QuestionResult
	reason            entities.CompletionReason
	startedAt         time.Time
	questionStartedAt time.Time
}

// NewQuizSession creates a session that has not started yet.
func NewQuizSession(bank QuestionBank, opts ...QuizSessionOption) *QuizSession {
	s := &QuizSession{
		bank:       bank,
		shuffler:   NewShuffler(0),
		validator:  NewAnswerValidator(),
		scorer:     NewScorer(DefaultScoringConfig()),
		timer:      noopTimer{},
		now:        time.Now,
		logger:     zap.NewNop(),
		phase:      entities.PhaseNotStarted,
		timeBudget: int(DefaultTimeBudget / time.Second),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetNotifier sets the notifier told about time-budget expiry (called after the view is created).
func (s *QuizSession) SetNotifier(n CompletionNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Start builds the working set and begins the play-through.
func (s *QuizSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseNotStarted {
		return ErrAlreadyStarted
	}

	return s.begin()
}

// Restart discards the current play-through, whatever its state, and begins a new one
// with a fresh shuffle and zeroed counters.
func (s *QuizSession) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Stop()
	previous := s.id
	s.reset()

	if err := s.begin(); err != nil {
		return err
	}

	s.logger.Info("quiz session restarted",
		zap.String("previous_session_id", previous),
		zap.String("session_id", s.id),
	)

	return nil
}

// SubmitAnswer checks raw against the current question and applies the score delta.
// It does not move to the next question.
func (s *QuizSession) SubmitAnswer(raw string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseInProgress {
		return false, ErrNotInProgress
	}
	if s.questionState != entities.QuestionUnanswered {
		return false, ErrQuestionAnswered
	}
	if strings.TrimSpace(raw) == "" {
		return false, ErrEmptyAnswer
	}

	q := &s.workingSet[s.position]
	spent := s.now().Sub(s.questionStartedAt).Truncate(time.Second)
	correct := s.validator.Validate(q, raw)
	points := s.scorer.Points(correct, s.hintsRevealed, spent)

	s.score += points
	s.answerLog[s.position] = raw

	if correct {
		s.questionState = entities.QuestionAnsweredCorrect
		s.results = append(s.results, entities.QuestionResult{
			QuestionID: q.ID,
			Category:   q.Category,
			Correct:    true,
			TimeSpent:  spent,
			HintsUsed:  s.hintsRevealed,
		})
	} else {
		s.questionState = entities.QuestionAnsweredIncorrect
		s.mistakes++
	}

	s.logger.Debug("answer submitted",
		zap.String("session_id", s.id),
		zap.Int("question_id", q.ID),
		zap.String("kind", string(q.Kind)),
		zap.Bool("correct", correct),
		zap.Int("points", points),
		zap.Int("score", s.score),
	)

	return correct, nil
}

// Advance moves past a correctly answered question. On the last question it completes the session.
func (s *QuizSession) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseInProgress {
		return ErrNotInProgress
	}
	if s.questionState != entities.QuestionAnsweredCorrect {
		return ErrNotAnsweredCorrectly
	}

	if s.position == len(s.workingSet)-1 {
		s.complete(entities.CompletionFinished)
		return nil
	}

	s.position++
	s.hintsRevealed = 0
	s.hintVisible = false
	s.questionState = entities.QuestionUnanswered
	s.questionStartedAt = s.now()

	return nil
}

// ResetQuestion re-arms the current question after an incorrect answer.
// The revealed hint count is kept so further hints keep lowering the reward.
func (s *QuizSession) ResetQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseInProgress {
		return ErrNotInProgress
	}
	if s.questionState != entities.QuestionAnsweredIncorrect {
		return ErrNotAnsweredIncorrectly
	}

	s.questionState = entities.QuestionUnanswered
	s.hintVisible = false
	s.questionStartedAt = s.now()

	return nil
}

// RevealHint discloses the next hint of the current question and returns it.
func (s *QuizSession) RevealHint() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != entities.PhaseInProgress {
		return "", ErrNotInProgress
	}
	if s.questionState != entities.QuestionUnanswered {
		return "", ErrQuestionAnswered
	}

	q := &s.workingSet[s.position]
	if s.hintsRevealed >= len(q.Hints) {
		return "", ErrHintsExhausted
	}

	s.hintsRevealed++
	s.hintVisible = true

	return q.Hints[s.hintsRevealed-1], nil
}

// Tick advances the elapsed time by one second and completes the session once the
// time budget is exhausted. It is a no-op unless the session is in progress.
func (s *QuizSession) Tick() {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	s.tick(gen)
}

// Close stops the timer. The session state is left as is.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Stop()
}

// Snapshot returns a copy of the session state for rendering.
func (s *QuizSession) Snapshot() entities.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// snapshot copies the state. The caller holds s.mu.
func (s *QuizSession) snapshot() entities.Snapshot {
	snap := entities.Snapshot{
		ID:               s.id,
		Phase:            s.phase,
		Position:         s.position,
		Total:            len(s.workingSet),
		QuestionState:    s.questionState,
		Score:            s.score,
		Mistakes:         s.mistakes,
		HintsRevealed:    s.hintsRevealed,
		HintVisible:      s.hintVisible,
		Elapsed:          s.elapsed,
		TimeBudget:       s.timeBudget,
		AnswerLog:        append([]string(nil), s.answerLog...),
		Results:          append([]entities.QuestionResult(nil), s.results...),
		Completed:        s.phase == entities.PhaseCompleted,
		CompletionReason: s.reason,
		StartedAt:        s.startedAt,
	}

	if len(s.workingSet) > 0 {
		snap.CategoryTotals = make(map[entities.Category]int)
		for _, q := range s.workingSet {
			snap.CategoryTotals[q.Category]++
		}
	}

	if s.position < len(s.workingSet) {
		q := s.workingSet[s.position].Clone()
		snap.Current = &q
	}

	return snap
}

func (s *QuizSession) tick(gen uint64) {
	s.mu.Lock()

	if gen != s.generation || s.phase != entities.PhaseInProgress {
		s.mu.Unlock()
		return
	}

	s.elapsed++
	if s.elapsed < s.timeBudget {
		s.mu.Unlock()
		return
	}

	s.complete(entities.CompletionTimeExpired)
	notifier, snap := s.notifier, s.snapshot()
	s.mu.Unlock()

	// The notifier reads the session, so it runs without the lock.
	if notifier != nil {
		notifier.NotifyTimeExpired(snap)
	}
}

// begin starts a new play-through. The caller holds s.mu.
func (s *QuizSession) begin() error {
	workingSet := s.shuffler.WorkingSet(s.bank.GetAll())
	if len(workingSet) == 0 {
		return ErrEmptyBank
	}

	now := s.now()

	s.generation++
	s.id = uuid.NewString()
	s.phase = entities.PhaseInProgress
	s.workingSet = workingSet
	s.answerLog = make([]string, len(workingSet))
	s.questionState = entities.QuestionUnanswered
	s.startedAt = now
	s.questionStartedAt = now

	gen := s.generation
	s.timer.Start(func() { s.tick(gen) })

	s.logger.Info("quiz session started",
		zap.String("session_id", s.id),
		zap.Int("questions", len(workingSet)),
		zap.Int("time_budget_seconds", s.timeBudget),
	)

	return nil
}

// reset zeroes the play-through. The caller holds s.mu.
func (s *QuizSession) reset() {
	s.id = ""
	s.phase = entities.PhaseNotStarted
	s.workingSet = nil
	s.position = 0
	s.questionState = ""
	s.score = 0
	s.mistakes = 0
	s.hintsRevealed = 0
	s.hintVisible = false
	s.elapsed = 0
	s.answerLog = nil
	s.results = nil
	s.reason = entities.CompletionNone
	s.startedAt = time.Time{}
	s.questionStartedAt = time.Time{}
}

// complete ends the play-through. The caller holds s.mu.
func (s *QuizSession) complete(reason entities.CompletionReason) {
	s.phase = entities.PhaseCompleted
	s.reason = reason
	s.timer.Stop()

	s.logger.Info("quiz session completed",
		zap.String("session_id", s.id),
		zap.String("reason", string(reason)),
		zap.Int("score", s.score),
		zap.Int("mistakes", s.mistakes),
		zap.Int("elapsed_seconds", s.elapsed),
	)
}
