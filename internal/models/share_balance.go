package models

import (
	"github.com/shopspring/decimal"
)

// ShareBalance is the latest indexed outcome-share balance for an account.
// Balance is on-chain atto-tick scale.
type ShareBalance struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID string `gorm:"type:varchar(66);not null;uniqueIndex:uq_share_balance,priority:1"`
	Outcome  int    `gorm:"not null;uniqueIndex:uq_share_balance,priority:2"`
	Account  string `gorm:"type:varchar(66);not null;uniqueIndex:uq_share_balance,priority:3;index"`

	Balance     decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	BlockNumber uint64          `gorm:"not null"`
	Timestamp   int64           `gorm:"not null"`
}

func (ShareBalance) TableName() string {
	return "share_balances"
}
