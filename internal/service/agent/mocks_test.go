package agent

import (
	"context"
	"sync"

	"github.com/heartmarshall/engage-agent/internal/llm"
)

var (
	_ templateStore = &templateStoreMock{}
	_ completer     = &completerMock{}
)

type templateStoreMock struct {
	GetTemplateFunc func(ctx context.Context, name string) string

	calls struct {
		GetTemplate []struct{ Name string }
	}
	lock sync.RWMutex
}

func (mock *templateStoreMock) GetTemplate(ctx context.Context, name string) string {
	if mock.GetTemplateFunc == nil {
		panic("templateStoreMock.GetTemplateFunc: method is nil but templateStore.GetTemplate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetTemplate = append(mock.calls.GetTemplate, struct{ Name string }{name})
	mock.lock.Unlock()
	return mock.GetTemplateFunc(ctx, name)
}

func (mock *templateStoreMock) GetTemplateCalls() []struct{ Name string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetTemplate
}

type completerMock struct {
	CompleteFunc func(ctx context.Context, system, prompt string) llm.Result

	calls struct {
		Complete []struct {
			System string
			Prompt string
		}
	}
	lock sync.RWMutex
}

func (mock *completerMock) Complete(ctx context.Context, system, prompt string) llm.Result {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	mock.lock.Lock()
	mock.calls.Complete = append(mock.calls.Complete, struct {
		System string
		Prompt string
	}{system, prompt})
	mock.lock.Unlock()
	return mock.CompleteFunc(ctx, system, prompt)
}

func (mock *completerMock) CompleteCalls() []struct {
	System string
	Prompt string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Complete
}
