package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Reporting states relevant to valuation.
const (
	ReportingStateAwaitingFinalization = "AWAITING_FINALIZATION"
	ReportingStateFinalized            = "FINALIZED"
)

// Market is the descriptor for one market: price range, tick count and
// resolution state. Once Finalized is set the winning payout numerators are
// present and immutable.
type Market struct {
	ID          string `gorm:"primaryKey;type:varchar(66)"`
	UniverseID  string `gorm:"type:varchar(66);not null;index"`
	NumOutcomes int    `gorm:"not null;default:2"`

	MinPrice decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	MaxPrice decimal.Decimal `gorm:"type:numeric(30,10);not null;default:1"`
	NumTicks decimal.Decimal `gorm:"type:numeric(30,0);not null;default:100"`

	Finalized             bool   `gorm:"not null;default:false;index"`
	FinalizationTimestamp *int64 `gorm:""`
	ReportingState        string `gorm:"type:varchar(40);index"`

	// Payout numerators are per-outcome tick values; winning is set at
	// finalization, tentative while a report awaits finalization.
	WinningPayoutNumerators          datatypes.JSONSlice[decimal.Decimal] `gorm:"type:jsonb"`
	TentativeWinningPayoutNumerators datatypes.JSONSlice[decimal.Decimal] `gorm:"type:jsonb"`
}

func (Market) TableName() string {
	return "markets"
}

// FinalizedAt reports whether the market counts as finalized at instant.
func (m Market) FinalizedAt(instant int64) bool {
	return m.Finalized && m.FinalizationTimestamp != nil && *m.FinalizationTimestamp <= instant
}

// WinningNumerator returns the winning payout numerator for outcome, false
// when the market has no winning vector or the outcome is out of range.
func (m Market) WinningNumerator(outcome int) (decimal.Decimal, bool) {
	if outcome < 0 || outcome >= len(m.WinningPayoutNumerators) {
		return decimal.Zero, false
	}
	return m.WinningPayoutNumerators[outcome], true
}

// TentativeNumerator returns the tentative winning payout numerator for
// outcome, false when no tentative vector exists.
func (m Market) TentativeNumerator(outcome int) (decimal.Decimal, bool) {
	if outcome < 0 || outcome >= len(m.TentativeWinningPayoutNumerators) {
		return decimal.Zero, false
	}
	return m.TentativeWinningPayoutNumerators[outcome], true
}
