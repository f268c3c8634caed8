package service

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// tickSpec fires the session tick once per second.
const tickSpec = "@every 1s"

// CronTimer is a Timer backed by a cron scheduler.
type CronTimer struct {
	mu     sync.Mutex
	cron   *cron.Cron
	logger *zap.Logger
}

// NewCronTimer creates a stopped CronTimer.
func NewCronTimer(logger *zap.Logger) *CronTimer {
	return &CronTimer{logger: logger}
}

// Start schedules tick every second, replacing any previous schedule.
func (t *CronTimer) Start(tick func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cron != nil {
		t.cron.Stop()
		t.cron = nil
	}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	if _, err := c.AddFunc(tickSpec, tick); err != nil {
		t.logger.Error("failed to add timer job", zap.Error(err))
		return
	}

	c.Start()
	t.cron = c
	t.logger.Debug("timer started")
}

// Stop halts the schedule. It does not wait for a running tick to return,
// so it may be called while the caller holds a lock the tick needs.
func (t *CronTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cron == nil {
		return
	}

	t.cron.Stop()
	t.cron = nil
	t.logger.Debug("timer stopped")
}

type noopTimer struct{}

func (noopTimer) Start(func()) {}
func (noopTimer) Stop()        {}
