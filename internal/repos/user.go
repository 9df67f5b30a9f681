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

type UserRepo interface {
  Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
  GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, userEmail string) (*types.User, error)
  EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error)
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
    return nil, err
  }
  return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("id = ?", userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("user %s: %w", userID, errs.ErrNotFound)
    }
    return nil, err
  }
  return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, userEmail string) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("email = ?", userEmail).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, fmt.Errorf("user %s: %w", userEmail, errs.ErrNotFound)
    }
    return nil, err
  }
  return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("email = ?", userEmail).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
