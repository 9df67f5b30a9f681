package types

import (
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
)

// Purchase rows are deleted physically, never soft-deleted; the client's
// purchase_count must track live rows only.
type Purchase struct {
  ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ClientID       uuid.UUID       `gorm:"index;not null;column:client_id" json:"client"`
  Client         *Client         `gorm:"foreignKey:ClientID;references:ID" json:"clientData,omitempty"`
  Details        string          `gorm:"not null;column:details" json:"details"`
  TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;column:total_amount" json:"totalAmount"`
  PurchaseDate   time.Time       `gorm:"index;not null;column:purchase_date" json:"purchaseDate"`
  PurchaseStatus bool            `gorm:"not null;default:false;column:purchase_status" json:"purchaseStatus"`
  CreatedAt      time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Purchase) TableName() string {
  return "purchase"
}
