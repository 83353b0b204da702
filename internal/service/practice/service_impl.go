package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/domain/leitner"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Stores groups the persistence dependencies of the practice service.
type Stores struct {
	Cards   store.CardStore
	Buckets store.BucketStore
	History store.HistoryStore
	State   store.StateStore
}

func (s Stores) validate() error {
	switch {
	case s.Cards == nil:
		return fmt.Errorf("%w: cards store cannot be nil", domain.ErrValidation)
	case s.Buckets == nil:
		return fmt.Errorf("%w: buckets store cannot be nil", domain.ErrValidation)
	case s.History == nil:
		return fmt.Errorf("%w: history store cannot be nil", domain.ErrValidation)
	case s.State == nil:
		return fmt.Errorf("%w: state store cannot be nil", domain.ErrValidation)
	}
	return nil
}

type serviceImpl struct {
	db        *sqlx.DB
	stores    Stores
	scheduler leitner.Scheduler
	logger    *slog.Logger
	now       func() time.Time

	// mu serializes review submissions within this process; BucketStore.Lock
	// does the same across processes.
	mu sync.Mutex
}

// NewService creates a practice Service. A nil scheduler uses the default
// parameters and a nil logger uses slog.Default().
func NewService(
	db *sqlx.DB,
	stores Stores,
	scheduler leitner.Scheduler,
	logger *slog.Logger,
) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if err := stores.validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		scheduler = leitner.NewDefaultScheduler()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:        db,
		stores:    stores,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "practice_service")),
		now:       time.Now,
	}, nil
}

// GetSession implements Service.GetSession.
func (s *serviceImpl) GetSession(ctx context.Context, tags []string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	day, err := s.stores.State.CurrentDay(ctx)
	if err != nil {
		log.Error("failed to read current day", slog.String("error", err.Error()))
		return nil, newError("get_session", "failed to read current day", err)
	}

	buckets, err := s.stores.Buckets.Load(ctx)
	if err != nil {
		log.Error("failed to load buckets", slog.String("error", err.Error()))
		return nil, newError("get_session", "failed to load buckets", err)
	}

	due := s.scheduler.SelectDue(buckets, day)
	tags = domain.NormalizeTags(tags)
	for key, card := range due {
		if !card.HasAnyTag(tags) {
			delete(due, key)
		}
	}

	cards := buckets.Ordered(due)
	log.Debug("built practice session",
		slog.Int("day", day),
		slog.Int("due_count", len(cards)),
		slog.Any("tags", tags))

	return &Session{Cards: cards, Day: day}, nil
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	key domain.CardKey,
	d domain.Difficulty,
) (*domain.PracticeRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !d.IsValid() {
		log.Warn("invalid difficulty",
			slog.String("front", key.Front),
			slog.Int("difficulty", int(d)))
		return nil, newError("submit_review", "invalid difficulty", ErrInvalidDifficulty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var record domain.PracticeRecord
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		buckets := s.stores.Buckets.WithTx(tx)
		if err := buckets.Lock(ctx); err != nil {
			return err
		}

		current, err := buckets.Load(ctx)
		if err != nil {
			return err
		}

		card, _, ok := current.Card(key)
		if !ok {
			return ErrCardNotFound
		}

		result, err := s.scheduler.Reorder(current, card, d)
		if err != nil {
			return err
		}

		if err := buckets.SetBucket(ctx, card.ID, result.NewBucket); err != nil {
			return err
		}

		record = domain.NewPracticeRecord(key, d, result.PreviousBucket, result.NewBucket, s.now())
		return s.stores.History.WithTx(tx).Append(ctx, &record)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCardNotFound),
			errors.Is(err, leitner.ErrCardNotFound),
			store.IsNotFoundError(err):
			log.Debug("review for unknown card", slog.String("front", key.Front))
			return nil, newError("submit_review", "card not found", ErrCardNotFound)
		case errors.Is(err, ErrInvalidDifficulty):
			return nil, newError("submit_review", "invalid difficulty", ErrInvalidDifficulty)
		}
		log.Error("failed to apply review",
			slog.String("error", err.Error()),
			slog.String("front", key.Front))
		return nil, newError("submit_review", "failed to apply review", err)
	}

	log.Info("review applied",
		slog.String("front", key.Front),
		slog.String("difficulty", d.String()),
		slog.Int("previous_bucket", record.PreviousBucket),
		slog.Int("new_bucket", record.NewBucket))
	return &record, nil
}

// GetHint implements Service.GetHint.
func (s *serviceImpl) GetHint(ctx context.Context, key domain.CardKey) (string, error) {
	card, err := s.stores.Cards.GetByKey(ctx, key)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", newError("get_hint", "card not found", ErrCardNotFound)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to look up card",
			slog.String("error", err.Error()))
		return "", newError("get_hint", "failed to look up card", err)
	}
	return leitner.Hint(*card), nil
}

// GetProgress implements Service.GetProgress.
func (s *serviceImpl) GetProgress(ctx context.Context) (*Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	buckets, err := s.stores.Buckets.Load(ctx)
	if err != nil {
		log.Error("failed to load buckets", slog.String("error", err.Error()))
		return nil, newError("get_progress", "failed to load buckets", err)
	}

	records, err := s.stores.History.List(ctx, 0)
	if err != nil {
		log.Error("failed to list history", slog.String("error", err.Error()))
		return nil, newError("get_progress", "failed to list history", err)
	}

	day, err := s.stores.State.CurrentDay(ctx)
	if err != nil {
		log.Error("failed to read current day", slog.String("error", err.Error()))
		return nil, newError("get_progress", "failed to read current day", err)
	}

	return &Progress{
		ProgressStats: leitner.ComputeProgress(buckets),
		History:       leitner.SummarizeHistory(records),
		Day:           day,
	}, nil
}

// AdvanceDay implements Service.AdvanceDay.
func (s *serviceImpl) AdvanceDay(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	day, err := s.stores.State.AdvanceDay(ctx)
	if err != nil {
		log.Error("failed to advance day", slog.String("error", err.Error()))
		return 0, newError("advance_day", "failed to advance day", err)
	}

	log.Info("day advanced", slog.Int("day", day))
	return day, nil
}

// History implements Service.History.
func (s *serviceImpl) History(ctx context.Context, limit int) ([]domain.PracticeRecord, error) {
	records, err := s.stores.History.List(ctx, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list history",
			slog.String("error", err.Error()))
		return nil, newError("history", "failed to list history", err)
	}
	return records, nil
}

// ClearHistory implements Service.ClearHistory.
func (s *serviceImpl) ClearHistory(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.stores.History.Clear(ctx)
	if err != nil {
		log.Error("failed to clear history", slog.String("error", err.Error()))
		return 0, newError("clear_history", "failed to clear history", err)
	}

	log.Info("history cleared", slog.Int64("deleted", n))
	return n, nil
}
