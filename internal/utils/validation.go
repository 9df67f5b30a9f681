package utils

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/normalization"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
  "github.com/andrelobo/zoe-backend/internal/repos"
  "github.com/andrelobo/zoe-backend/internal/types"
)

// Accepted purchaseDate layouts. Tried in order.
var purchaseDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ValidatePurchaseInput checks a raw creation payload and returns the
// normalized purchase ready for insertion. The duplicate check is a separate
// read before the write; two concurrent creates for the same client can both
// pass it (see the race test in services).
func ValidatePurchaseInput(ctx context.Context, purchaseRepo repos.PurchaseRepo, log *logger.Logger, payload map[string]interface{}) (*types.Purchase, error) {
  purchase, err := ParsePurchasePayload(payload)
  if err != nil {
    return nil, err
  }
  count, cErr := purchaseRepo.CountByClientID(ctx, nil, purchase.ClientID)
  if cErr != nil {
    return nil, fmt.Errorf("Failed to check existing purchases for client: %w", cErr)
  }
  if count > 0 {
    return nil, fmt.Errorf("client %s: %w", purchase.ClientID, errs.ErrDuplicatePurchase)
  }
  return purchase, nil
}

// ParsePurchasePayload is the pure part of validation: field presence, JSON
// types and date well-formedness. It works on the decoded payload map rather
// than a bound struct so that a missing key, a mistyped value and a malformed
// date each surface as their own failure kind.
func ParsePurchasePayload(payload map[string]interface{}) (*types.Purchase, error) {
  clientStr, err := requireString(payload, "client")
  if err != nil {
    return nil, err
  }
  clientID, pErr := uuid.Parse(clientStr)
  if pErr != nil {
    return nil, fmt.Errorf("client must be a valid id: %w", errs.ErrTypeMismatch)
  }

  details, err := requireString(payload, "details")
  if err != nil {
    return nil, err
  }
  details = normalization.TrimInputString(details)
  if details == "" {
    return nil, fmt.Errorf("details must not be empty: %w", errs.ErrMissingField)
  }

  rawAmount, ok := payload["totalAmount"]
  if !ok || rawAmount == nil {
    return nil, fmt.Errorf("totalAmount: %w", errs.ErrMissingField)
  }
  amount, ok := rawAmount.(float64)
  if !ok {
    // Numeric strings are rejected on purpose; totalAmount must be a JSON
    // number.
    return nil, fmt.Errorf("totalAmount must be a number: %w", errs.ErrTypeMismatch)
  }

  dateStr, err := requireString(payload, "purchaseDate")
  if err != nil {
    return nil, err
  }
  purchaseDate, dErr := ParsePurchaseDate(dateStr)
  if dErr != nil {
    return nil, dErr
  }

  purchaseStatus := false
  if rawStatus, ok := payload["purchaseStatus"]; ok && rawStatus != nil {
    status, ok := rawStatus.(bool)
    if !ok {
      return nil, fmt.Errorf("purchaseStatus must be a boolean: %w", errs.ErrTypeMismatch)
    }
    purchaseStatus = status
  }

  return &types.Purchase{
    ClientID:       clientID,
    Details:        details,
    TotalAmount:    decimal.NewFromFloat(amount),
    PurchaseDate:   purchaseDate,
    PurchaseStatus: purchaseStatus,
  }, nil
}

func ParsePurchaseDate(value string) (time.Time, error) {
  for _, layout := range purchaseDateLayouts {
    if t, err := time.Parse(layout, value); err == nil {
      return t, nil
    }
  }
  return time.Time{}, fmt.Errorf("purchaseDate %q: %w", value, errs.ErrInvalidDate)
}

func requireString(payload map[string]interface{}, field string) (string, error) {
  raw, ok := payload[field]
  if !ok || raw == nil {
    return "", fmt.Errorf("%s: %w", field, errs.ErrMissingField)
  }
  value, ok := raw.(string)
  if !ok {
    return "", fmt.Errorf("%s must be a string: %w", field, errs.ErrTypeMismatch)
  }
  return value, nil
}
