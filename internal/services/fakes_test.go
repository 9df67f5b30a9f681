package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
	"github.com/andrelobo/zoe-backend/internal/types"
)

// In-memory stand-ins for the repo interfaces. They keep the same
// classification contract as the real adapters (ErrNotFound for missing
// rows) so the service's error mapping is exercised for real.

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]*types.Purchase

	createErr error
	// countBarrier, when set, holds every CountByClientID call until all
	// expected callers have arrived. Used to pin the check-then-act race.
	countBarrier *sync.WaitGroup
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[uuid.UUID]*types.Purchase{}}
}

func (f *fakePurchaseRepo) snapshotSorted(filter func(*types.Purchase) bool) []*types.Purchase {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Purchase
	for _, p := range f.purchases {
		if filter == nil || filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out
}

func (f *fakePurchaseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Purchase, error) {
	return f.snapshotSorted(nil), nil
}

func (f *fakePurchaseRepo) GetByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Purchase, error) {
	return f.snapshotSorted(func(p *types.Purchase) bool { return p.ClientID == clientID }), nil
}

func (f *fakePurchaseRepo) CountByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	var count int64
	for _, p := range f.purchases {
		if p.ClientID == clientID {
			count++
		}
	}
	barrier := f.countBarrier
	f.mu.Unlock()

	if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}
	return count, nil
}

func (f *fakePurchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchase *types.Purchase) (*types.Purchase, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *purchase
	f.purchases[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePurchaseRepo) UpdateByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, fields map[string]interface{}) (*types.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
	}
	for column, value := range fields {
		switch column {
		case "client_id":
			p.ClientID = value.(uuid.UUID)
		case "details":
			p.Details = value.(string)
		case "total_amount":
			p.TotalAmount = value.(decimal.Decimal)
		case "purchase_date":
			p.PurchaseDate = value.(time.Time)
		case "purchase_status":
			p.PurchaseStatus = value.(bool)
		}
	}
	cp := *p
	return &cp, nil
}

func (f *fakePurchaseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[purchaseID]
	if !ok {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
	}
	delete(f.purchases, purchaseID)
	cp := *p
	return &cp, nil
}

type fakeClientRepo struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int

	adjustErr error
	adjusts   int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{counts: map[uuid.UUID]int{}}
}

func (f *fakeClientRepo) Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[client.ID] = 0
	cp := *client
	return &cp, nil
}

func (f *fakeClientRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.counts[clientID]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", clientID, errs.ErrNotFound)
	}
	return &types.Client{ID: clientID, PurchaseCount: count}, nil
}

func (f *fakeClientRepo) EmailExists(ctx context.Context, tx *gorm.DB, clientEmail string) (bool, error) {
	return false, nil
}

func (f *fakeClientRepo) AdjustPurchaseCount(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjusts++
	if f.adjustErr != nil {
		return f.adjustErr
	}
	f.counts[clientID] += delta
	return nil
}

func (f *fakeClientRepo) countFor(clientID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[clientID]
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[cp.Email] = &cp
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", userID, errs.ErrNotFound)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, userEmail string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userEmail]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userEmail, errs.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[userEmail]
	return ok, nil
}
