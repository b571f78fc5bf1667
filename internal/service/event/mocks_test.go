package event

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

var (
	_ userRepo    = &userRepoMock{}
	_ eventRepo   = &eventRepoMock{}
	_ messageRepo = &messageRepoMock{}
	_ decider     = &deciderMock{}
	_ notifier    = &notifierMock{}
	_ txManager   = &txManagerMock{}
)

type userRepoMock struct {
	GetOrCreateFunc func(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, bool, error)

	calls struct {
		GetOrCreate []struct{ P domain.UserProfile }
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetOrCreate(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, bool, error) {
	if mock.GetOrCreateFunc == nil {
		panic("userRepoMock.GetOrCreateFunc: method is nil but userRepo.GetOrCreate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetOrCreate = append(mock.calls.GetOrCreate, struct{ P domain.UserProfile }{p})
	mock.lock.Unlock()
	return mock.GetOrCreateFunc(ctx, p)
}

func (mock *userRepoMock) GetOrCreateCalls() []struct{ P domain.UserProfile } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetOrCreate
}

type eventRepoMock struct {
	CreateFunc     func(ctx context.Context, e *domain.Event) (*domain.Event, error)
	ListRecentFunc func(ctx context.Context, f domain.RecentEventFilter) ([]domain.Event, error)

	calls struct {
		Create     []struct{ E *domain.Event }
		ListRecent []struct{ F domain.RecentEventFilter }
	}
	lock sync.RWMutex
}

func (mock *eventRepoMock) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if mock.CreateFunc == nil {
		panic("eventRepoMock.CreateFunc: method is nil but eventRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ E *domain.Event }{e})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *eventRepoMock) CreateCalls() []struct{ E *domain.Event } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *eventRepoMock) ListRecent(ctx context.Context, f domain.RecentEventFilter) ([]domain.Event, error) {
	if mock.ListRecentFunc == nil {
		panic("eventRepoMock.ListRecentFunc: method is nil but eventRepo.ListRecent was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, struct{ F domain.RecentEventFilter }{f})
	mock.lock.Unlock()
	return mock.ListRecentFunc(ctx, f)
}

func (mock *eventRepoMock) ListRecentCalls() []struct{ F domain.RecentEventFilter } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRecent
}

type messageRepoMock struct {
	CreateFunc     func(ctx context.Context, m *domain.OutboundMessage) (*domain.OutboundMessage, error)
	CountSinceFunc func(ctx context.Context, userID string, since time.Time) (int, error)

	calls struct {
		Create     []struct{ M *domain.OutboundMessage }
		CountSince []struct {
			UserID string
			Since  time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *messageRepoMock) Create(ctx context.Context, m *domain.OutboundMessage) (*domain.OutboundMessage, error) {
	if mock.CreateFunc == nil {
		panic("messageRepoMock.CreateFunc: method is nil but messageRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ M *domain.OutboundMessage }{m})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, m)
}

func (mock *messageRepoMock) CreateCalls() []struct{ M *domain.OutboundMessage } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *messageRepoMock) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if mock.CountSinceFunc == nil {
		panic("messageRepoMock.CountSinceFunc: method is nil but messageRepo.CountSince was just called")
	}
	mock.lock.Lock()
	mock.calls.CountSince = append(mock.calls.CountSince, struct {
		UserID string
		Since  time.Time
	}{userID, since})
	mock.lock.Unlock()
	return mock.CountSinceFunc(ctx, userID, since)
}

func (mock *messageRepoMock) CountSinceCalls() []struct {
	UserID string
	Since  time.Time
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.CountSince
}

type deciderMock struct {
	DecideFunc func(ctx context.Context, profile domain.UserProfile, event domain.Event, recent []domain.Event) domain.Decision

	calls struct {
		Decide []struct {
			Profile domain.UserProfile
			Event   domain.Event
			Recent  []domain.Event
		}
	}
	lock sync.RWMutex
}

func (mock *deciderMock) Decide(ctx context.Context, profile domain.UserProfile, event domain.Event, recent []domain.Event) domain.Decision {
	if mock.DecideFunc == nil {
		panic("deciderMock.DecideFunc: method is nil but decider.Decide was just called")
	}
	mock.lock.Lock()
	mock.calls.Decide = append(mock.calls.Decide, struct {
		Profile domain.UserProfile
		Event   domain.Event
		Recent  []domain.Event
	}{profile, event, recent})
	mock.lock.Unlock()
	return mock.DecideFunc(ctx, profile, event, recent)
}

func (mock *deciderMock) DecideCalls() []struct {
	Profile domain.UserProfile
	Event   domain.Event
	Recent  []domain.Event
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Decide
}

type notifierMock struct {
	DispatchFunc func(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error

	calls struct {
		Dispatch []struct {
			To  domain.UserProfile
			Msg domain.OutboundMessage
		}
	}
	lock sync.RWMutex
}

func (mock *notifierMock) Dispatch(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error {
	if mock.DispatchFunc == nil {
		panic("notifierMock.DispatchFunc: method is nil but notifier.Dispatch was just called")
	}
	mock.lock.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, struct {
		To  domain.UserProfile
		Msg domain.OutboundMessage
	}{to, msg})
	mock.lock.Unlock()
	return mock.DispatchFunc(ctx, to, msg)
}

func (mock *notifierMock) DispatchCalls() []struct {
	To  domain.UserProfile
	Msg domain.OutboundMessage
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Dispatch
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}
