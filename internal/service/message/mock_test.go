package message

import (
	"context"

	"github.com/dailystart/messages-backend/internal/domain"
)

var _ messageRepo = &messageRepoMock{}

type messageRepoMock struct {
	ListFunc           func(ctx context.Context, f domain.MessageFilter) ([]domain.Message, error)
	CountFunc          func(ctx context.Context, f domain.MessageFilter) (int, error)
	PickRandomFunc     func(ctx context.Context, f domain.MessageFilter) (*domain.Message, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.Message, error)
	ListCategoriesFunc func(ctx context.Context) ([]domain.CategoryCount, error)
	CountActiveFunc    func(ctx context.Context) (int, error)
}

func (m *messageRepoMock) List(ctx context.Context, f domain.MessageFilter) ([]domain.Message, error) {
	if m.ListFunc == nil {
		panic("messageRepoMock.ListFunc is nil")
	}
	return m.ListFunc(ctx, f)
}

func (m *messageRepoMock) Count(ctx context.Context, f domain.MessageFilter) (int, error) {
	if m.CountFunc == nil {
		panic("messageRepoMock.CountFunc is nil")
	}
	return m.CountFunc(ctx, f)
}

func (m *messageRepoMock) PickRandom(ctx context.Context, f domain.MessageFilter) (*domain.Message, error) {
	if m.PickRandomFunc == nil {
		panic("messageRepoMock.PickRandomFunc is nil")
	}
	return m.PickRandomFunc(ctx, f)
}

func (m *messageRepoMock) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	if m.GetByIDFunc == nil {
		panic("messageRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *messageRepoMock) ListCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	if m.ListCategoriesFunc == nil {
		panic("messageRepoMock.ListCategoriesFunc is nil")
	}
	return m.ListCategoriesFunc(ctx)
}

func (m *messageRepoMock) CountActive(ctx context.Context) (int, error) {
	if m.CountActiveFunc == nil {
		panic("messageRepoMock.CountActiveFunc is nil")
	}
	return m.CountActiveFunc(ctx)
}

var _ accessRepo = &accessRepoMock{}

type accessRepoMock struct {
	InsertFunc            func(ctx context.Context, rec domain.AccessRecord) error
	CountAllFunc          func(ctx context.Context) (int, error)
	CountTodayFunc        func(ctx context.Context) (int, error)
	PopularCategoriesFunc func(ctx context.Context, limit int) ([]domain.CategoryViews, error)
}

func (m *accessRepoMock) Insert(ctx context.Context, rec domain.AccessRecord) error {
	if m.InsertFunc == nil {
		panic("accessRepoMock.InsertFunc is nil")
	}
	return m.InsertFunc(ctx, rec)
}

func (m *accessRepoMock) CountAll(ctx context.Context) (int, error) {
	if m.CountAllFunc == nil {
		panic("accessRepoMock.CountAllFunc is nil")
	}
	return m.CountAllFunc(ctx)
}

func (m *accessRepoMock) CountToday(ctx context.Context) (int, error) {
	if m.CountTodayFunc == nil {
		panic("accessRepoMock.CountTodayFunc is nil")
	}
	return m.CountTodayFunc(ctx)
}

func (m *accessRepoMock) PopularCategories(ctx context.Context, limit int) ([]domain.CategoryViews, error) {
	if m.PopularCategoriesFunc == nil {
		panic("accessRepoMock.PopularCategoriesFunc is nil")
	}
	return m.PopularCategoriesFunc(ctx, limit)
}
