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

type ClientRepo interface {
  Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Client, error)
  GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error)
  EmailExists(ctx context.Context, tx *gorm.DB, clientEmail string) (bool, error)
  AdjustPurchaseCount(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, delta int) error
}

type clientRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
  repoLog := baseLog.With("repo", "ClientRepo")
  return &clientRepo{db: db, log: repoLog}
}

func (cr *clientRepo) Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Create(client).Error; err != nil {
    return nil, err
  }
  return client, nil
}

func (cr *clientRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Client
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Client
  if err := transaction.WithContext(ctx).
    Where("id = ?", clientID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("client %s: %w", clientID, errs.ErrNotFound)
    }
    return nil, err
  }
  return &result, nil
}

func (cr *clientRepo) EmailExists(ctx context.Context, tx *gorm.DB, clientEmail string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Client{}).
    Where("email = ?", clientEmail).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

// AdjustPurchaseCount is the single synchronization point for the derived
// counter. The whole adjustment is one UPDATE with an in-database expression,
// so concurrent callers for the same client never lose updates.
func (cr *clientRepo) AdjustPurchaseCount(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, delta int) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Client{}).
    Where("id = ?", clientID).
    UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", delta))
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return fmt.Errorf("client %s: %w", clientID, errs.ErrNotFound)
  }
  return nil
}
