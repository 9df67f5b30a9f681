package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
	"github.com/andrelobo/zoe-backend/internal/repos/testutil"
	"github.com/andrelobo/zoe-backend/internal/types"
)

func TestPurchaseRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	clientRepo := NewClientRepo(db, testutil.Logger(t))
	repo := NewPurchaseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	client, err := clientRepo.Create(ctx, tx, &types.Client{
		ID:    uuid.New(),
		Name:  "Ana",
		Email: "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Create client: %v", err)
	}

	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	// Insert with the later date first; ordering must come from
	// purchase_date, not insertion order.
	first, err := repo.Create(ctx, tx, &types.Purchase{
		ID:           uuid.New(),
		ClientID:     client.ID,
		Details:      "two chairs",
		TotalAmount:  decimal.NewFromInt(200),
		PurchaseDate: later,
	})
	if err != nil {
		t.Fatalf("Create purchase: %v", err)
	}
	second, err := repo.Create(ctx, tx, &types.Purchase{
		ID:           uuid.New(),
		ClientID:     client.ID,
		Details:      "one table",
		TotalAmount:  decimal.NewFromInt(500),
		PurchaseDate: earlier,
	})
	if err != nil {
		t.Fatalf("Create purchase: %v", err)
	}

	all, err := repo.GetAll(ctx, tx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAll: expected 2 purchases, got %d", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("GetAll: expected date-descending order, got [%s, %s]", all[0].ID, all[1].ID)
	}
	if all[0].Client == nil || all[0].Client.ID != client.ID {
		t.Fatalf("GetAll: expected client preloaded, got %+v", all[0].Client)
	}

	byClient, err := repo.GetByClientID(ctx, tx, client.ID)
	if err != nil {
		t.Fatalf("GetByClientID: %v", err)
	}
	if len(byClient) != 2 || byClient[0].ID != first.ID {
		t.Fatalf("GetByClientID: unexpected result: %+v", byClient)
	}

	count, err := repo.CountByClientID(ctx, tx, client.ID)
	if err != nil {
		t.Fatalf("CountByClientID: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByClientID: expected 2, got %d", count)
	}

	got, err := repo.GetByID(ctx, tx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Details != "two chairs" {
		t.Fatalf("GetByID: unexpected purchase: %+v", got)
	}

	if _, err := repo.GetByID(ctx, tx, uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("GetByID (missing): expected ErrNotFound, got %v", err)
	}
}

func TestPurchaseRepoUpdateMergePatch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	clientRepo := NewClientRepo(db, testutil.Logger(t))
	repo := NewPurchaseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	client, err := clientRepo.Create(ctx, tx, &types.Client{
		ID:    uuid.New(),
		Name:  "Bruno",
		Email: "bruno@example.com",
	})
	if err != nil {
		t.Fatalf("Create client: %v", err)
	}

	created, err := repo.Create(ctx, tx, &types.Purchase{
		ID:             uuid.New(),
		ClientID:       client.ID,
		Details:        "sofa",
		TotalAmount:    decimal.NewFromInt(100),
		PurchaseDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PurchaseStatus: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.UpdateByID(ctx, tx, created.ID, map[string]interface{}{
		"total_amount": decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if !updated.TotalAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("UpdateByID: expected totalAmount 500, got %s", updated.TotalAmount)
	}
	if updated.Details != "sofa" || !updated.PurchaseStatus || !updated.PurchaseDate.Equal(created.PurchaseDate) {
		t.Fatalf("UpdateByID: patch touched unrelated fields: %+v", updated)
	}

	if _, err := repo.UpdateByID(ctx, tx, uuid.New(), map[string]interface{}{"details": "x"}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("UpdateByID (missing): expected ErrNotFound, got %v", err)
	}
}

func TestPurchaseRepoDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	clientRepo := NewClientRepo(db, testutil.Logger(t))
	repo := NewPurchaseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	client, err := clientRepo.Create(ctx, tx, &types.Client{
		ID:    uuid.New(),
		Name:  "Carla",
		Email: "carla@example.com",
	})
	if err != nil {
		t.Fatalf("Create client: %v", err)
	}
	created, err := repo.Create(ctx, tx, &types.Purchase{
		ID:           uuid.New(),
		ClientID:     client.ID,
		Details:      "lamp",
		TotalAmount:  decimal.NewFromInt(40),
		PurchaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := repo.DeleteByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if deleted.ClientID != client.ID {
		t.Fatalf("DeleteByID: expected deleted row to keep client reference, got %+v", deleted)
	}

	// The delete is physical: the row must be gone, not hidden.
	if _, err := repo.GetByID(ctx, tx, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("GetByID after delete: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.DeleteByID(ctx, tx, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("DeleteByID (second time): expected ErrNotFound, got %v", err)
	}
}
