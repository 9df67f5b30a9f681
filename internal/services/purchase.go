package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/normalization"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
  "github.com/andrelobo/zoe-backend/internal/repos"
  "github.com/andrelobo/zoe-backend/internal/types"
  "github.com/andrelobo/zoe-backend/internal/utils"
)

// UpdatePurchaseInput carries the merge-patch body for an update. Nil means
// "leave the stored value alone"; only non-nil fields are written.
type UpdatePurchaseInput struct {
  Client         *string  `json:"client"`
  Details        *string  `json:"details"`
  TotalAmount    *float64 `json:"totalAmount"`
  PurchaseDate   *string  `json:"purchaseDate"`
  PurchaseStatus *bool    `json:"purchaseStatus"`
}

func (in UpdatePurchaseInput) Empty() bool {
  return in.Client == nil && in.Details == nil && in.TotalAmount == nil &&
    in.PurchaseDate == nil && in.PurchaseStatus == nil
}

type PurchaseService interface {
  CreatePurchase(ctx context.Context, payload map[string]interface{}) (*types.Purchase, error)
  GetAllPurchases(ctx context.Context) ([]*types.Purchase, error)
  GetPurchaseByID(ctx context.Context, purchaseID uuid.UUID) (*types.Purchase, error)
  GetPurchasesByClientID(ctx context.Context, clientID uuid.UUID) ([]*types.Purchase, error)
  UpdatePurchaseByID(ctx context.Context, purchaseID uuid.UUID, input UpdatePurchaseInput) (*types.Purchase, error)
  DeletePurchaseByID(ctx context.Context, purchaseID uuid.UUID) error
}

type purchaseService struct {
  db           *gorm.DB
  log          *logger.Logger
  purchaseRepo repos.PurchaseRepo
  clientRepo   repos.ClientRepo
}

func NewPurchaseService(db *gorm.DB, log *logger.Logger, purchaseRepo repos.PurchaseRepo, clientRepo repos.ClientRepo) PurchaseService {
  serviceLog := log.With("service", "PurchaseService")
  return &purchaseService{
    db:           db,
    log:          serviceLog,
    purchaseRepo: purchaseRepo,
    clientRepo:   clientRepo,
  }
}

// CreatePurchase runs validate -> write -> counter adjust, strictly in that
// order. The purchase row is the source of truth; the counter is derived and
// updated second. The two writes are separate round-trips on purpose: if the
// adjust fails the purchase is NOT rolled back, the divergence is logged for
// operators and the create still succeeds.
func (ps *purchaseService) CreatePurchase(ctx context.Context, payload map[string]interface{}) (*types.Purchase, error) {
  purchase, vErr := utils.ValidatePurchaseInput(ctx, ps.purchaseRepo, ps.log, payload)
  if vErr != nil {
    return nil, vErr
  }
  purchase.ID = uuid.New()

  created, cErr := ps.purchaseRepo.Create(ctx, nil, purchase)
  if cErr != nil {
    return nil, fmt.Errorf("Failed to create purchase: %w", cErr)
  }

  if aErr := ps.clientRepo.AdjustPurchaseCount(ctx, nil, created.ClientID, +1); aErr != nil {
    ps.log.Warn("purchase count increment failed after create, counter out of sync",
      "purchase_id", created.ID, "client_id", created.ClientID, "error", aErr)
  }
  return created, nil
}

func (ps *purchaseService) GetAllPurchases(ctx context.Context) ([]*types.Purchase, error) {
  purchases, err := ps.purchaseRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list purchases: %w", err)
  }
  // An empty listing is a valid result for the unscoped list.
  return purchases, nil
}

func (ps *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID uuid.UUID) (*types.Purchase, error) {
  purchase, err := ps.purchaseRepo.GetByID(ctx, nil, purchaseID)
  if err != nil {
    return nil, err
  }
  return purchase, nil
}

// GetPurchasesByClientID treats an empty result as not-found. This is
// asymmetric with GetAllPurchases (empty list, 200) and kept that way on
// purpose; both behaviors are pinned by tests.
func (ps *purchaseService) GetPurchasesByClientID(ctx context.Context, clientID uuid.UUID) ([]*types.Purchase, error) {
  purchases, err := ps.purchaseRepo.GetByClientID(ctx, nil, clientID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list purchases for client: %w", err)
  }
  if len(purchases) == 0 {
    return nil, fmt.Errorf("No purchases found for this client: %w", errs.ErrNotFound)
  }
  return purchases, nil
}

// UpdatePurchaseByID applies a merge-patch. It never touches the counter:
// reassigning a purchase to another client does not recount either side.
func (ps *purchaseService) UpdatePurchaseByID(ctx context.Context, purchaseID uuid.UUID, input UpdatePurchaseInput) (*types.Purchase, error) {
  if input.Empty() {
    return nil, fmt.Errorf("at least one field is required: %w", errs.ErrMissingField)
  }

  fields := map[string]interface{}{}
  if input.Client != nil {
    clientID, err := uuid.Parse(*input.Client)
    if err != nil {
      return nil, fmt.Errorf("client must be a valid id: %w", errs.ErrTypeMismatch)
    }
    fields["client_id"] = clientID
  }
  if input.Details != nil {
    details := normalization.TrimInputString(*input.Details)
    if details == "" {
      return nil, fmt.Errorf("details must not be empty: %w", errs.ErrMissingField)
    }
    fields["details"] = details
  }
  if input.TotalAmount != nil {
    fields["total_amount"] = decimal.NewFromFloat(*input.TotalAmount)
  }
  if input.PurchaseDate != nil {
    purchaseDate, err := utils.ParsePurchaseDate(*input.PurchaseDate)
    if err != nil {
      return nil, err
    }
    fields["purchase_date"] = purchaseDate
  }
  if input.PurchaseStatus != nil {
    fields["purchase_status"] = *input.PurchaseStatus
  }

  updated, err := ps.purchaseRepo.UpdateByID(ctx, nil, purchaseID, fields)
  if err != nil {
    return nil, err
  }
  return updated, nil
}

// DeletePurchaseByID removes the row and then decrements the owning client's
// counter. A missing purchase never touches the counter; a failed decrement
// after a successful delete is the same logged-not-repaired divergence as on
// create.
func (ps *purchaseService) DeletePurchaseByID(ctx context.Context, purchaseID uuid.UUID) error {
  deleted, err := ps.purchaseRepo.DeleteByID(ctx, nil, purchaseID)
  if err != nil {
    return err
  }

  if deleted.ClientID != uuid.Nil {
    if aErr := ps.clientRepo.AdjustPurchaseCount(ctx, nil, deleted.ClientID, -1); aErr != nil {
      ps.log.Warn("purchase count decrement failed after delete, counter out of sync",
        "purchase_id", deleted.ID, "client_id", deleted.ClientID, "error", aErr)
    }
  }
  return nil
}
