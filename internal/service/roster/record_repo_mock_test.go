package roster

import (
	"context"
	"sync"
	"time"

	"github.com/communityops/partnerbot/internal/domain"
)

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	CreateFunc     func(ctx context.Context, rec domain.PartnershipRecord) (domain.PartnershipRecord, error)
	ListWindowFunc func(ctx context.Context, guildID, ownerID string, from, to time.Time) ([]domain.PartnershipRecord, error)

	calls struct {
		Create []struct {
			Rec domain.PartnershipRecord
		}
		ListWindow []struct {
			GuildID string
			OwnerID string
			From    time.Time
			To      time.Time
		}
	}
	lockCreate     sync.RWMutex
	lockListWindow sync.RWMutex
}

func (mock *recordRepoMock) Create(ctx context.Context, rec domain.PartnershipRecord) (domain.PartnershipRecord, error) {
	if mock.CreateFunc == nil {
		panic("recordRepoMock.CreateFunc: method is nil but recordRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Rec domain.PartnershipRecord
	}{Rec: rec})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateCalls() []struct {
	Rec domain.PartnershipRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *recordRepoMock) ListWindow(ctx context.Context, guildID, ownerID string, from, to time.Time) ([]domain.PartnershipRecord, error) {
	if mock.ListWindowFunc == nil {
		panic("recordRepoMock.ListWindowFunc: method is nil but recordRepo.ListWindow was just called")
	}
	mock.lockListWindow.Lock()
	mock.calls.ListWindow = append(mock.calls.ListWindow, struct {
		GuildID string
		OwnerID string
		From    time.Time
		To      time.Time
	}{GuildID: guildID, OwnerID: ownerID, From: from, To: to})
	mock.lockListWindow.Unlock()
	return mock.ListWindowFunc(ctx, guildID, ownerID, from, to)
}

func (mock *recordRepoMock) ListWindowCalls() []struct {
	GuildID string
	OwnerID string
	From    time.Time
	To      time.Time
} {
	mock.lockListWindow.RLock()
	calls := mock.calls.ListWindow
	mock.lockListWindow.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
