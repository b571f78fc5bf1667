package rest

import (
	"context"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/auth"
	"github.com/heartmarshall/engage-agent/internal/service/event"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
	"github.com/heartmarshall/engage-agent/internal/service/user"
)

type eventServiceMock struct {
	RecordEventFunc  func(ctx context.Context, input event.RecordInput) (*event.Outcome, error)
	RecordEventCalls []event.RecordInput
}

func (m *eventServiceMock) RecordEvent(ctx context.Context, input event.RecordInput) (*event.Outcome, error) {
	m.RecordEventCalls = append(m.RecordEventCalls, input)
	return m.RecordEventFunc(ctx, input)
}

type authServiceMock struct {
	LoginFunc         func(ctx context.Context, input auth.LoginInput) (*auth.TokenResult, error)
	ValidateTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.TokenResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) ValidateToken(ctx context.Context, token string) (string, error) {
	return m.ValidateTokenFunc(ctx, token)
}

type dashboardServiceMock struct {
	StatsFunc func(ctx context.Context) (*domain.DashboardStats, error)
}

func (m *dashboardServiceMock) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	return m.StatsFunc(ctx)
}

type messageServiceMock struct {
	ListRecentFunc   func(ctx context.Context) ([]domain.OutboundMessage, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status domain.MessageStatus) (*domain.OutboundMessage, error)
}

func (m *messageServiceMock) ListRecent(ctx context.Context) ([]domain.OutboundMessage, error) {
	return m.ListRecentFunc(ctx)
}

func (m *messageServiceMock) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.OutboundMessage, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

type qualityCheckerMock struct {
	CheckQualityFunc func(ctx context.Context, message string, userContext map[string]any) domain.QualityReport
}

func (m *qualityCheckerMock) CheckQuality(ctx context.Context, message string, userContext map[string]any) domain.QualityReport {
	return m.CheckQualityFunc(ctx, message, userContext)
}

type userServiceMock struct {
	GetProfileFunc          func(ctx context.Context, userID string) (*domain.UserProfile, error)
	ListEventsFunc          func(ctx context.Context, userID string) ([]domain.Event, error)
	ListMessagesFunc        func(ctx context.Context, userID string) ([]domain.OutboundMessage, error)
	ListFunc                func(ctx context.Context, input user.ListInput) ([]domain.UserProfile, int, error)
	GenerateTextFunc        func(ctx context.Context, input user.GenerateTextInput) (string, error)
	GrowthOpportunitiesFunc func(ctx context.Context, userID string) ([]domain.GrowthOpportunity, error)
}

func (m *userServiceMock) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return m.GetProfileFunc(ctx, userID)
}

func (m *userServiceMock) ListEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	return m.ListEventsFunc(ctx, userID)
}

func (m *userServiceMock) ListMessages(ctx context.Context, userID string) ([]domain.OutboundMessage, error) {
	return m.ListMessagesFunc(ctx, userID)
}

func (m *userServiceMock) List(ctx context.Context, input user.ListInput) ([]domain.UserProfile, int, error) {
	return m.ListFunc(ctx, input)
}

func (m *userServiceMock) GenerateText(ctx context.Context, input user.GenerateTextInput) (string, error) {
	return m.GenerateTextFunc(ctx, input)
}

func (m *userServiceMock) GrowthOpportunities(ctx context.Context, userID string) ([]domain.GrowthOpportunity, error) {
	return m.GrowthOpportunitiesFunc(ctx, userID)
}

type promptServiceMock struct {
	ListFunc   func(ctx context.Context) ([]domain.PromptTemplate, error)
	GetFunc    func(ctx context.Context, id int64) (*domain.PromptTemplate, error)
	CreateFunc func(ctx context.Context, input prompt.SaveInput) (*domain.PromptTemplate, error)
	UpdateFunc func(ctx context.Context, id int64, input prompt.SaveInput) (*domain.PromptTemplate, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *promptServiceMock) List(ctx context.Context) ([]domain.PromptTemplate, error) {
	return m.ListFunc(ctx)
}

func (m *promptServiceMock) Get(ctx context.Context, id int64) (*domain.PromptTemplate, error) {
	return m.GetFunc(ctx, id)
}

func (m *promptServiceMock) Create(ctx context.Context, input prompt.SaveInput) (*domain.PromptTemplate, error) {
	return m.CreateFunc(ctx, input)
}

func (m *promptServiceMock) Update(ctx context.Context, id int64, input prompt.SaveInput) (*domain.PromptTemplate, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *promptServiceMock) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
