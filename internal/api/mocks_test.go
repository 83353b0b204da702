package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/leitner/internal/domain"
	"github.com/phrazzld/leitner/internal/service"
	"github.com/phrazzld/leitner/internal/service/practice"
)

type mockPracticeService struct {
	GetSessionFn   func(ctx context.Context, tags []string) (*practice.Session, error)
	SubmitReviewFn func(ctx context.Context, key domain.CardKey, d domain.Difficulty) (*domain.PracticeRecord, error)
	GetHintFn      func(ctx context.Context, key domain.CardKey) (string, error)
	GetProgressFn  func(ctx context.Context) (*practice.Progress, error)
	AdvanceDayFn   func(ctx context.Context) (int, error)
	HistoryFn      func(ctx context.Context, limit int) ([]domain.PracticeRecord, error)
	ClearHistoryFn func(ctx context.Context) (int64, error)
}

var _ practice.Service = (*mockPracticeService)(nil)

func (m *mockPracticeService) GetSession(ctx context.Context, tags []string) (*practice.Session, error) {
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, tags)
	}
	return &practice.Session{Cards: []domain.Card{}}, nil
}

func (m *mockPracticeService) SubmitReview(
	ctx context.Context,
	key domain.CardKey,
	d domain.Difficulty,
) (*domain.PracticeRecord, error) {
	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, key, d)
	}
	return &domain.PracticeRecord{}, nil
}

func (m *mockPracticeService) GetHint(ctx context.Context, key domain.CardKey) (string, error) {
	if m.GetHintFn != nil {
		return m.GetHintFn(ctx, key)
	}
	return "", nil
}

func (m *mockPracticeService) GetProgress(ctx context.Context) (*practice.Progress, error) {
	if m.GetProgressFn != nil {
		return m.GetProgressFn(ctx)
	}
	return &practice.Progress{}, nil
}

func (m *mockPracticeService) AdvanceDay(ctx context.Context) (int, error) {
	if m.AdvanceDayFn != nil {
		return m.AdvanceDayFn(ctx)
	}
	return 1, nil
}

func (m *mockPracticeService) History(ctx context.Context, limit int) ([]domain.PracticeRecord, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockPracticeService) ClearHistory(ctx context.Context) (int64, error) {
	if m.ClearHistoryFn != nil {
		return m.ClearHistoryFn(ctx)
	}
	return 0, nil
}

type mockCardService struct {
	CreateCardFn  func(ctx context.Context, input service.CardInput) (*domain.Card, error)
	GetCardFn     func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	ListCardsFn   func(ctx context.Context, tags []string) ([]domain.Card, error)
	UpdateCardFn  func(ctx context.Context, id uuid.UUID, input service.CardInput) (*domain.Card, error)
	DeleteCardFn  func(ctx context.Context, id uuid.UUID) error
	ImportCardsFn func(ctx context.Context, inputs []service.CardInput) (*service.ImportResult, error)
}

var _ service.CardService = (*mockCardService)(nil)

func (m *mockCardService) CreateCard(ctx context.Context, input service.CardInput) (*domain.Card, error) {
	return m.CreateCardFn(ctx, input)
}

func (m *mockCardService) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return m.GetCardFn(ctx, id)
}

func (m *mockCardService) ListCards(ctx context.Context, tags []string) ([]domain.Card, error) {
	return m.ListCardsFn(ctx, tags)
}

func (m *mockCardService) UpdateCard(
	ctx context.Context,
	id uuid.UUID,
	input service.CardInput,
) (*domain.Card, error) {
	return m.UpdateCardFn(ctx, id, input)
}

func (m *mockCardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return m.DeleteCardFn(ctx, id)
}

func (m *mockCardService) ImportCards(
	ctx context.Context,
	inputs []service.CardInput,
) (*service.ImportResult, error) {
	return m.ImportCardsFn(ctx, inputs)
}
