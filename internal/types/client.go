package types

import (
  "time"

  "github.com/google/uuid"
)

// Client owns no back-collection of purchases; PurchaseCount is the derived
// counter kept in step by the purchase service (incremented on create,
// decremented on delete).
type Client struct {
  ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name          string    `gorm:"not null;column:name" json:"name"`
  Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Phone         string    `gorm:"column:phone" json:"phone"`
  Address       string    `gorm:"column:address" json:"address"`
  PurchaseCount int       `gorm:"not null;default:0;column:purchase_count" json:"purchaseCount"`
  CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Client) TableName() string {
  return "client"
}
