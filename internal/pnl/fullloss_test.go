package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"marketpnl/internal/models"
)

func finalizedBinaryMarket(winning []decimal.Decimal) models.Market {
	ts := int64(5000)
	return models.Market{
		ID:                      "m1",
		NumOutcomes:             2,
		MinPrice:                decimal.Zero,
		MaxPrice:                decimal.NewFromInt(1),
		NumTicks:                decimal.NewFromInt(100),
		Finalized:               true,
		FinalizationTimestamp:   &ts,
		ReportingState:          models.ReportingStateFinalized,
		WinningPayoutNumerators: datatypes.NewJSONSlice(winning),
	}
}

func TestIsFullLoss(t *testing.T) {
	market := finalizedBinaryMarket([]decimal.Decimal{decimal.Zero, decimal.NewFromInt(1)})

	// All shares in the losing outcome: total loss.
	if !IsFullLoss(market, map[int]decimal.Decimal{0: d("5"), 1: d("0")}) {
		t.Fatalf("expected full loss for losing-side balance")
	}
	// Shares in the winning outcome: not a full loss.
	if IsFullLoss(market, map[int]decimal.Decimal{0: d("0"), 1: d("3")}) {
		t.Fatalf("expected no full loss for winning-side balance")
	}
}

func TestIsFullLoss_NotFinalized(t *testing.T) {
	market := finalizedBinaryMarket([]decimal.Decimal{decimal.Zero, decimal.NewFromInt(1)})
	market.Finalized = false
	if IsFullLoss(market, map[int]decimal.Decimal{0: d("5")}) {
		t.Fatalf("unfinalized market can never be a full loss")
	}
}
