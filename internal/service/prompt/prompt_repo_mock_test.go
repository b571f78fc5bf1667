package prompt

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

var _ promptRepo = &promptRepoMock{}

type promptRepoMock struct {
	GetActiveByNameFunc func(ctx context.Context, name string) (*domain.PromptTemplate, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*domain.PromptTemplate, error)
	ListFunc            func(ctx context.Context) ([]domain.PromptTemplate, error)
	CreateFunc          func(ctx context.Context, p *domain.PromptTemplate) (*domain.PromptTemplate, error)
	UpdateFunc          func(ctx context.Context, id int64, p *domain.PromptTemplate, now time.Time) (*domain.PromptTemplate, error)
	DeleteFunc          func(ctx context.Context, id int64) error

	calls struct {
		GetActiveByName []struct{ Name string }
		Create          []struct{ P *domain.PromptTemplate }
		Update          []struct {
			ID  int64
			P   *domain.PromptTemplate
			Now time.Time
		}
		Delete []struct{ ID int64 }
	}
	lock sync.RWMutex
}

func (mock *promptRepoMock) GetActiveByName(ctx context.Context, name string) (*domain.PromptTemplate, error) {
	if mock.GetActiveByNameFunc == nil {
		panic("promptRepoMock.GetActiveByNameFunc: method is nil but promptRepo.GetActiveByName was just called")
	}
	mock.lock.Lock()
	mock.calls.GetActiveByName = append(mock.calls.GetActiveByName, struct{ Name string }{name})
	mock.lock.Unlock()
	return mock.GetActiveByNameFunc(ctx, name)
}

func (mock *promptRepoMock) GetActiveByNameCalls() []struct{ Name string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetActiveByName
}

func (mock *promptRepoMock) GetByID(ctx context.Context, id int64) (*domain.PromptTemplate, error) {
	if mock.GetByIDFunc == nil {
		panic("promptRepoMock.GetByIDFunc: method is nil but promptRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *promptRepoMock) List(ctx context.Context) ([]domain.PromptTemplate, error) {
	if mock.ListFunc == nil {
		panic("promptRepoMock.ListFunc: method is nil but promptRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *promptRepoMock) Create(ctx context.Context, p *domain.PromptTemplate) (*domain.PromptTemplate, error) {
	if mock.CreateFunc == nil {
		panic("promptRepoMock.CreateFunc: method is nil but promptRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ P *domain.PromptTemplate }{p})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *promptRepoMock) CreateCalls() []struct{ P *domain.PromptTemplate } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *promptRepoMock) Update(ctx context.Context, id int64, p *domain.PromptTemplate, now time.Time) (*domain.PromptTemplate, error) {
	if mock.UpdateFunc == nil {
		panic("promptRepoMock.UpdateFunc: method is nil but promptRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ID  int64
		P   *domain.PromptTemplate
		Now time.Time
	}{id, p, now})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, id, p, now)
}

func (mock *promptRepoMock) UpdateCalls() []struct {
	ID  int64
	P   *domain.PromptTemplate
	Now time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *promptRepoMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("promptRepoMock.DeleteFunc: method is nil but promptRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID int64 }{id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *promptRepoMock) DeleteCalls() []struct{ ID int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}
