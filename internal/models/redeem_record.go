package models

import (
	"github.com/shopspring/decimal"
)

// RedeemRecord is one winning-position redemption by an account.
type RedeemRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID string `gorm:"type:varchar(66);not null;index"`
	Account  string `gorm:"type:varchar(66);not null;index"`

	Amount decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`

	Timestamp   int64  `gorm:"not null;index"`
	BlockNumber uint64 `gorm:"not null"`
	LogIndex    uint64 `gorm:"not null"`
}

func (RedeemRecord) TableName() string {
	return "redeem_records"
}
