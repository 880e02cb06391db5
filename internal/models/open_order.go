package models

import (
	"github.com/shopspring/decimal"
)

// Order sides and states.
const (
	OrderTypeBid = "bid"
	OrderTypeAsk = "ask"

	OrderStateOpen = "open"
)

// OpenOrder is a resting order. Amount and Price are display scale; the
// escrow estimator fills TokensEscrowed and SharesEscrowed in place.
type OpenOrder struct {
	OrderID  string `gorm:"primaryKey;type:varchar(66)"`
	MarketID string `gorm:"type:varchar(66);not null;index"`
	Outcome  int    `gorm:"not null"`
	Account  string `gorm:"type:varchar(66);not null;index"`

	OrderType string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Price     decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	OrderState string `gorm:"type:varchar(20);not null;default:'open';index"`

	Timestamp   int64  `gorm:"not null"`
	BlockNumber uint64 `gorm:"not null"`
	LogIndex    uint64 `gorm:"not null"`

	TokensEscrowed decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	SharesEscrowed decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
}

func (OpenOrder) TableName() string {
	return "open_orders"
}
