package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot is an hourly cron capture of an account's portfolio
// rollup, kept for trend charts.
type PortfolioSnapshot struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Account    string    `gorm:"type:varchar(66);not null;uniqueIndex:uq_snapshot,priority:1"`
	UniverseID string    `gorm:"type:varchar(66);not null"`
	SnapshotAt time.Time `gorm:"type:timestamptz;not null;uniqueIndex:uq_snapshot,priority:2"`

	Realized      decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Unrealized    decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	FrozenFunds   decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	CurrentValue  decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	OpenPositions int             `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}
