package service

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/aliskhannn/ess-quiz-bot/internal/domain/entities"
)

// maxOrderReshuffles bounds the attempts to get an ordering puzzle that is not already solved.
const maxOrderReshuffles = 5

// Shuffler builds the session-specific working set from the question bank.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler creates a Shuffler seeded with seed. A zero seed uses the current time.
func NewShuffler(seed int64) *Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Shuffler{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// WorkingSet returns every bank question exactly once in a uniformly random order,
// with the options of each question permuted independently. The bank is not modified.
func (s *Shuffler) WorkingSet(bank []entities.Question) []entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Question, 0, len(bank))
	for _, q := range bank {
		out = append(out, q.Clone())
	}

	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	for i := range out {
		s.shuffleQuestion(&out[i])
	}

	return out
}

func (s *Shuffler) shuffleQuestion(q *entities.Question) {
	switch q.Kind {
	case entities.KindOrder:
		s.shuffleOrder(q)
	case entities.KindMatch:
		s.shuffleStrings(q.Options)
		q.Targets = s.matchTargets(q.Correct.Pairs)
	default:
		s.shuffleStrings(q.Options)
	}
}

// shuffleOrder permutes an ordering puzzle so that it is not handed out already solved.
func (s *Shuffler) shuffleOrder(q *entities.Question) {
	if len(q.Options) < 2 {
		return
	}

	for r := 0; r < maxOrderReshuffles; r++ {
		s.shuffleStrings(q.Options)
		if !slices.Equal(q.Options, q.Correct.Sequence) {
			return
		}
	}

	// Rotating a solved sequence of 2+ distinct items always unsolves it.
	first := q.Options[0]
	copy(q.Options, q.Options[1:])
	q.Options[len(q.Options)-1] = first
}

// matchTargets returns the right-hand column of a match question in random order.
// Values are sorted first so the result depends only on the seed, not on map iteration.
func (s *Shuffler) matchTargets(pairs map[string]string) []string {
	targets := make([]string, 0, len(pairs))
	for _, v := range pairs {
		targets = append(targets, v)
	}
	slices.Sort(targets)
	s.shuffleStrings(targets)
	return targets
}

func (s *Shuffler) shuffleStrings(items []string) {
	s.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
