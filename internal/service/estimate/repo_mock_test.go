package estimate

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

var _ estimateRepo = &estimateRepoMock{}

type estimateRepoMock struct {
	CreateFunc  func(ctx context.Context, data domain.EstimateData) (int64, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Estimate, error)
	ListFunc    func(ctx context.Context, page, limit int) (*domain.EstimatePage, error)
	SearchFunc  func(ctx context.Context, q string) ([]domain.Estimate, error)
	DeleteFunc  func(ctx context.Context, id int64) (bool, error)
	StatsFunc   func(ctx context.Context, since time.Time) (*domain.EstimateStats, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Data domain.EstimateData
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx   context.Context
			Page  int
			Limit int
		}
		Search []struct {
			Ctx context.Context
			Q   string
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
		Stats []struct {
			Ctx   context.Context
			Since time.Time
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockSearch  sync.RWMutex
	lockDelete  sync.RWMutex
	lockStats   sync.RWMutex
}

func (mock *estimateRepoMock) Create(ctx context.Context, data domain.EstimateData) (int64, error) {
	if mock.CreateFunc == nil {
		panic("estimateRepoMock.CreateFunc: method is nil but estimateRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Data domain.EstimateData
	}{Ctx: ctx, Data: data}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, data)
}

func (mock *estimateRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Data domain.EstimateData
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *estimateRepoMock) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	if mock.GetByIDFunc == nil {
		panic("estimateRepoMock.GetByIDFunc: method is nil but estimateRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *estimateRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *estimateRepoMock) List(ctx context.Context, page, limit int) (*domain.EstimatePage, error) {
	if mock.ListFunc == nil {
		panic("estimateRepoMock.ListFunc: method is nil but estimateRepo.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Page  int
		Limit int
	}{Ctx: ctx, Page: page, Limit: limit}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, page, limit)
}

func (mock *estimateRepoMock) ListCalls() []struct {
	Ctx   context.Context
	Page  int
	Limit int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *estimateRepoMock) Search(ctx context.Context, q string) ([]domain.Estimate, error) {
	if mock.SearchFunc == nil {
		panic("estimateRepoMock.SearchFunc: method is nil but estimateRepo.Search was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   string
	}{Ctx: ctx, Q: q}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, q)
}

func (mock *estimateRepoMock) SearchCalls() []struct {
	Ctx context.Context
	Q   string
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

func (mock *estimateRepoMock) Delete(ctx context.Context, id int64) (bool, error) {
	if mock.DeleteFunc == nil {
		panic("estimateRepoMock.DeleteFunc: method is nil but estimateRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *estimateRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *estimateRepoMock) Stats(ctx context.Context, since time.Time) (*domain.EstimateStats, error) {
	if mock.StatsFunc == nil {
		panic("estimateRepoMock.StatsFunc: method is nil but estimateRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Since time.Time
	}{Ctx: ctx, Since: since}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, since)
}

func (mock *estimateRepoMock) StatsCalls() []struct {
	Ctx   context.Context
	Since time.Time
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------

var _ documentRenderer = &documentRendererMock{}

type documentRendererMock struct {
	RenderFunc func(e domain.FinalEstimate) ([]byte, error)

	calls struct {
		Render []struct {
			E domain.FinalEstimate
		}
	}
	lockRender sync.RWMutex
}

func (mock *documentRendererMock) Render(e domain.FinalEstimate) ([]byte, error) {
	if mock.RenderFunc == nil {
		panic("documentRendererMock.RenderFunc: method is nil but documentRenderer.Render was just called")
	}
	callInfo := struct{ E domain.FinalEstimate }{E: e}
	mock.lockRender.Lock()
	mock.calls.Render = append(mock.calls.Render, callInfo)
	mock.lockRender.Unlock()
	return mock.RenderFunc(e)
}

func (mock *documentRendererMock) RenderCalls() []struct {
	E domain.FinalEstimate
} {
	mock.lockRender.RLock()
	calls := mock.calls.Render
	mock.lockRender.RUnlock()
	return calls
}
