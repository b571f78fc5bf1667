package user

import (
	"context"
	"sync"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/agent"
)

var (
	_ userRepo    = &userRepoMock{}
	_ eventRepo   = &eventRepoMock{}
	_ messageRepo = &messageRepoMock{}
	_ copywriter  = &copywriterMock{}
)

type userRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]domain.UserProfile, error)
	CountFunc       func(ctx context.Context) (int, error)

	calls struct {
		List []struct{ Limit, Offset int }
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if mock.GetByUserIDFunc == nil {
		panic("userRepoMock.GetByUserIDFunc: method is nil but userRepo.GetByUserID was just called")
	}
	return mock.GetByUserIDFunc(ctx, userID)
}

func (mock *userRepoMock) List(ctx context.Context, limit, offset int) ([]domain.UserProfile, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Limit, Offset int }{limit, offset})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, limit, offset)
}

func (mock *userRepoMock) ListCalls() []struct{ Limit, Offset int } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *userRepoMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("userRepoMock.CountFunc: method is nil but userRepo.Count was just called")
	}
	return mock.CountFunc(ctx)
}

type eventRepoMock struct {
	ListByUserFunc func(ctx context.Context, userID string) ([]domain.Event, error)
}

func (mock *eventRepoMock) ListByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	if mock.ListByUserFunc == nil {
		panic("eventRepoMock.ListByUserFunc: method is nil but eventRepo.ListByUser was just called")
	}
	return mock.ListByUserFunc(ctx, userID)
}

type messageRepoMock struct {
	ListByUserFunc func(ctx context.Context, userID string) ([]domain.OutboundMessage, error)
}

func (mock *messageRepoMock) ListByUser(ctx context.Context, userID string) ([]domain.OutboundMessage, error) {
	if mock.ListByUserFunc == nil {
		panic("messageRepoMock.ListByUserFunc: method is nil but messageRepo.ListByUser was just called")
	}
	return mock.ListByUserFunc(ctx, userID)
}

type copywriterMock struct {
	GenerateTextFunc        func(ctx context.Context, profile domain.UserProfile, channel domain.Channel, tc agent.TextContext) string
	GrowthOpportunitiesFunc func(ctx context.Context, profile domain.UserProfile) []domain.GrowthOpportunity

	calls struct {
		GenerateText []struct {
			Profile domain.UserProfile
			Channel domain.Channel
			TC      agent.TextContext
		}
	}
	lock sync.RWMutex
}

func (mock *copywriterMock) GenerateText(ctx context.Context, profile domain.UserProfile, channel domain.Channel, tc agent.TextContext) string {
	if mock.GenerateTextFunc == nil {
		panic("copywriterMock.GenerateTextFunc: method is nil but copywriter.GenerateText was just called")
	}
	mock.lock.Lock()
	mock.calls.GenerateText = append(mock.calls.GenerateText, struct {
		Profile domain.UserProfile
		Channel domain.Channel
		TC      agent.TextContext
	}{profile, channel, tc})
	mock.lock.Unlock()
	return mock.GenerateTextFunc(ctx, profile, channel, tc)
}

func (mock *copywriterMock) GenerateTextCalls() []struct {
	Profile domain.UserProfile
	Channel domain.Channel
	TC      agent.TextContext
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GenerateText
}

func (mock *copywriterMock) GrowthOpportunities(ctx context.Context, profile domain.UserProfile) []domain.GrowthOpportunity {
	if mock.GrowthOpportunitiesFunc == nil {
		panic("copywriterMock.GrowthOpportunitiesFunc: method is nil but copywriter.GrowthOpportunities was just called")
	}
	return mock.GrowthOpportunitiesFunc(ctx, profile)
}
