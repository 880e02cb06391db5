package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PositionChange is one on-chain profit-loss-changed log: the account's
// running position state for a (market, outcome) as of (blockNumber,
// logIndex). Numeric fields are on-chain scale; prices are tick counts,
// amounts and cash values are atto-scaled integers. Immutable once indexed.
type PositionChange struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UniverseID string `gorm:"type:varchar(66);not null;index"`
	MarketID   string `gorm:"type:varchar(66);not null;index:idx_pl_partition,priority:1;uniqueIndex:uq_pl_log,priority:1"`
	Outcome    int    `gorm:"not null;index:idx_pl_partition,priority:2;uniqueIndex:uq_pl_log,priority:2"`
	Account    string `gorm:"type:varchar(66);not null;index:idx_pl_partition,priority:3;uniqueIndex:uq_pl_log,priority:3"`

	Timestamp       int64  `gorm:"not null;index"`
	BlockNumber     uint64 `gorm:"not null;uniqueIndex:uq_pl_log,priority:4"`
	LogIndex        uint64 `gorm:"not null;uniqueIndex:uq_pl_log,priority:5"`
	TransactionHash string `gorm:"type:varchar(66);not null"`

	NetPosition    decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	AvgPrice       decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	RealizedProfit decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	RealizedCost   decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
	FrozenFunds    decimal.Decimal `gorm:"type:numeric(40,0);not null;default:0"`
}

func (PositionChange) TableName() string {
	return "position_changes"
}

func (r PositionChange) Ordering() (uint64, uint64) { return r.BlockNumber, r.LogIndex }
func (r PositionChange) At() int64                  { return r.Timestamp }
func (r PositionChange) Partition() (string, int)   { return r.MarketID, r.Outcome }

func (r PositionChange) Identity() string {
	return r.TransactionHash + ":" + strconv.FormatUint(r.LogIndex, 10)
}
