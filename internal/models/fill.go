package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Fill is one order-filled log. Fills are used only for valuation (last
// traded price) and trade counting, never for position state.
type Fill struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID string `gorm:"type:varchar(66);not null;index:idx_fill_partition,priority:1"`
	Outcome  int    `gorm:"not null;index:idx_fill_partition,priority:2"`

	Creator string `gorm:"type:varchar(66);not null;index"`
	Filler  string `gorm:"type:varchar(66);not null;index"`

	// Price is on-chain tick scale; Amount is atto-scaled.
	Price  decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	Amount decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`

	Timestamp       int64  `gorm:"not null;index"`
	BlockNumber     uint64 `gorm:"not null"`
	LogIndex        uint64 `gorm:"not null"`
	TransactionHash string `gorm:"type:varchar(66);not null"`
	TradeGroupID    string `gorm:"type:varchar(66);index"`
}

func (Fill) TableName() string {
	return "fills"
}

func (r Fill) Ordering() (uint64, uint64) { return r.BlockNumber, r.LogIndex }
func (r Fill) At() int64                  { return r.Timestamp }
func (r Fill) Partition() (string, int)   { return r.MarketID, r.Outcome }

func (r Fill) Identity() string {
	return r.TransactionHash + ":" + strconv.FormatUint(r.LogIndex, 10)
}
