package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
	estimatesvc "github.com/heartmarshall/hvac-estimate/internal/service/estimate"
)

var _ estimateService = &estimateServiceMock{}

type estimateServiceMock struct {
	SaveFunc     func(ctx context.Context, input estimatesvc.SaveInput) (int64, error)
	GetFunc      func(ctx context.Context, id int64) (*domain.Estimate, error)
	ListFunc     func(ctx context.Context, input estimatesvc.ListInput) (*domain.EstimatePage, error)
	SearchFunc   func(ctx context.Context, input estimatesvc.SearchInput) ([]domain.Estimate, error)
	DeleteFunc   func(ctx context.Context, id int64) error
	StatsFunc    func(ctx context.Context) (*domain.EstimateStats, error)
	DownloadFunc func(ctx context.Context, format docformat.Format, input estimatesvc.DownloadInput) (*estimatesvc.Document, error)

	calls struct {
		Save     []estimatesvc.SaveInput
		Get      []int64
		List     []estimatesvc.ListInput
		Search   []estimatesvc.SearchInput
		Delete   []int64
		Stats    int
		Download []struct {
			Format docformat.Format
			Input  estimatesvc.DownloadInput
		}
	}
	lock sync.RWMutex
}

func (mock *estimateServiceMock) Save(ctx context.Context, input estimatesvc.SaveInput) (int64, error) {
	if mock.SaveFunc == nil {
		panic("estimateServiceMock.SaveFunc: method is nil but estimateService.Save was just called")
	}
	mock.lock.Lock()
	mock.calls.Save = append(mock.calls.Save, input)
	mock.lock.Unlock()
	return mock.SaveFunc(ctx, input)
}

func (mock *estimateServiceMock) SaveCalls() []estimatesvc.SaveInput {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Save
}

func (mock *estimateServiceMock) Get(ctx context.Context, id int64) (*domain.Estimate, error) {
	if mock.GetFunc == nil {
		panic("estimateServiceMock.GetFunc: method is nil but estimateService.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, id)
	mock.lock.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *estimateServiceMock) GetCalls() []int64 {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Get
}

func (mock *estimateServiceMock) List(ctx context.Context, input estimatesvc.ListInput) (*domain.EstimatePage, error) {
	if mock.ListFunc == nil {
		panic("estimateServiceMock.ListFunc: method is nil but estimateService.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, input)
	mock.lock.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *estimateServiceMock) ListCalls() []estimatesvc.ListInput {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *estimateServiceMock) Search(ctx context.Context, input estimatesvc.SearchInput) ([]domain.Estimate, error) {
	if mock.SearchFunc == nil {
		panic("estimateServiceMock.SearchFunc: method is nil but estimateService.Search was just called")
	}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, input)
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, input)
}

func (mock *estimateServiceMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("estimateServiceMock.DeleteFunc: method is nil but estimateService.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *estimateServiceMock) DeleteCalls() []int64 {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *estimateServiceMock) Stats(ctx context.Context) (*domain.EstimateStats, error) {
	if mock.StatsFunc == nil {
		panic("estimateServiceMock.StatsFunc: method is nil but estimateService.Stats was just called")
	}
	mock.lock.Lock()
	mock.calls.Stats++
	mock.lock.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *estimateServiceMock) Download(ctx context.Context, format docformat.Format, input estimatesvc.DownloadInput) (*estimatesvc.Document, error) {
	if mock.DownloadFunc == nil {
		panic("estimateServiceMock.DownloadFunc: method is nil but estimateService.Download was just called")
	}
	mock.lock.Lock()
	mock.calls.Download = append(mock.calls.Download, struct {
		Format docformat.Format
		Input  estimatesvc.DownloadInput
	}{format, input})
	mock.lock.Unlock()
	return mock.DownloadFunc(ctx, format, input)
}

func (mock *estimateServiceMock) DownloadCalls() []struct {
	Format docformat.Format
	Input  estimatesvc.DownloadInput
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Download
}
