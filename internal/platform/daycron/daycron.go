// Package daycron advances the practice day counter on a cron schedule.
package daycron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/platform/logger"
)

// runTimeout bounds a single scheduled advance.
const runTimeout = 30 * time.Second

// ErrEmptySpec is returned by New when no cron expression is given.
var ErrEmptySpec = errors.New("cron expression cannot be empty")

// DayAdvancer is the operation run on every tick.
type DayAdvancer interface {
	AdvanceDay(ctx context.Context) (int, error)
}

// Scheduler runs DayAdvancer.AdvanceDay on a cron schedule in UTC.
type Scheduler struct {
	scheduler *gocron.Scheduler
	advancer  DayAdvancer
	logger    *slog.Logger
	spec      string
}

// New creates a scheduler for the given standard five-field cron expression.
// It does not start running until Start is called.
func New(spec string, advancer DayAdvancer, log *slog.Logger) (*Scheduler, error) {
	if advancer == nil {
		panic("advancer cannot be nil")
	}
	if spec == "" {
		return nil, ErrEmptySpec
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		advancer:  advancer,
		logger:    log.With(slog.String("component", "day_scheduler")),
		spec:      spec,
	}

	// A slow database must not stack up overlapping advances.
	s.scheduler.SingletonModeAll()

	if _, err := s.scheduler.Cron(spec).Do(s.tick); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	return s, nil
}

// Start begins running scheduled advances in the background.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	s.logger.Info("day scheduler started", slog.String("cron", s.spec))
}

// Stop terminates the schedule and waits for a running advance to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("day scheduler stopped")
}

// NextRun reports when the next advance is due. Zero before Start.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// RunNow advances the day immediately, outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context) (int, error) {
	log := s.logger.With(slog.String("correlation_id", uuid.New().String()))
	ctx = logger.WithLogger(ctx, log)

	day, err := s.advancer.AdvanceDay(ctx)
	if err != nil {
		log.Error("scheduled day advance failed", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("scheduled day advance completed", slog.Int("day", day))
	return day, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = s.RunNow(ctx)
}
