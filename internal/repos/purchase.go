package repos

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/andrelobo/zoe-backend/internal/logger"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
  "github.com/andrelobo/zoe-backend/internal/types"
)

// PurchaseRepo translates purchase lifecycle calls to store calls. It owns no
// business rules; the only classification it performs is ErrNotFound for a
// missing row. Everything else surfaces as a store failure.
type PurchaseRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Purchase, error)
  GetByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error)
  GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Purchase, error)
  CountByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error)
  Create(ctx context.Context, tx *gorm.DB, purchase *types.Purchase) (*types.Purchase, error)
  UpdateByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, fields map[string]interface{}) (*types.Purchase, error)
  DeleteByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error)
}

type purchaseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
  repoLog := baseLog.With("repo", "PurchaseRepo")
  return &purchaseRepo{db: db, log: repoLog}
}

func (pr *purchaseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Purchase
  if err := transaction.WithContext(ctx).
    Preload("Client").
    Order("purchase_date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *purchaseRepo) GetByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Purchase
  if err := transaction.WithContext(ctx).
    Preload("Client").
    Where("id = ?", purchaseID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
    }
    return nil, err
  }
  return &result, nil
}

func (pr *purchaseRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  // An empty slice is a valid result here; the service decides whether
  // "no purchases" is an error for the caller.
  var results []*types.Purchase
  if err := transaction.WithContext(ctx).
    Where("client_id = ?", clientID).
    Order("purchase_date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *purchaseRepo) CountByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Purchase{}).
    Where("client_id = ?", clientID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (pr *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchase *types.Purchase) (*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Create(purchase).Error; err != nil {
    return nil, err
  }
  return purchase, nil
}

func (pr *purchaseRepo) UpdateByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, fields map[string]interface{}) (*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var existing types.Purchase
  if err := transaction.WithContext(ctx).
    Where("id = ?", purchaseID).
    First(&existing).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
    }
    return nil, err
  }

  // Merge-patch: only the keys present in fields are written, everything
  // else keeps its stored value.
  if len(fields) > 0 {
    if err := transaction.WithContext(ctx).
      Model(&existing).
      Updates(fields).Error; err != nil {
      return nil, err
    }
  }

  var updated types.Purchase
  if err := transaction.WithContext(ctx).
    Preload("Client").
    Where("id = ?", purchaseID).
    First(&updated).Error; err != nil {
    return nil, err
  }
  return &updated, nil
}

func (pr *purchaseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID) (*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var existing types.Purchase
  if err := transaction.WithContext(ctx).
    Where("id = ?", purchaseID).
    First(&existing).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("purchase %s: %w", purchaseID, errs.ErrNotFound)
    }
    return nil, err
  }

  // Physical delete; the deleted row is returned so the caller still knows
  // the client reference for the counter decrement.
  if err := transaction.WithContext(ctx).
    Where("id = ?", purchaseID).
    Delete(&types.Purchase{}).Error; err != nil {
    return nil, err
  }
  return &existing, nil
}
