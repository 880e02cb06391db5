package repository

import (
	"context"

	"marketpnl/internal/models"
)

// ListPositionChangesParams selects position-change records for one account,
// optionally narrowed to a market, at or before EndTime (0 means no bound).
type ListPositionChangesParams struct {
	UniverseID string
	Account    string
	MarketID   string
	EndTime    int64
}

// ListFillsParams selects fills for valuation: all fills in the given
// markets at or before EndTime, any account.
type ListFillsParams struct {
	MarketIDs []string
	EndTime   int64
}

// AccountRangeParams scopes an activity query to one account over
// [StartTime, EndTime].
type AccountRangeParams struct {
	Account   string
	StartTime int64
	EndTime   int64
}

// Repository is the indexed event-log store this engine reads and the ingest
// stream writes. Records are append-only; upserts exist for replayed logs.
type Repository interface {
	// Universes and market descriptors.
	GetUniverseByID(ctx context.Context, id string) (*models.Universe, error)
	UpsertUniverse(ctx context.Context, item *models.Universe) error
	ListMarketsByIDs(ctx context.Context, ids []string) ([]models.Market, error)
	UpsertMarket(ctx context.Context, item *models.Market) error

	// Position-change and fill logs.
	ListPositionChanges(ctx context.Context, params ListPositionChangesParams) ([]models.PositionChange, error)
	UpsertPositionChange(ctx context.Context, item *models.PositionChange) error
	ListFills(ctx context.Context, params ListFillsParams) ([]models.Fill, error)
	InsertFill(ctx context.Context, item *models.Fill) error

	// Share balances and resting orders.
	ListShareBalances(ctx context.Context, account string, marketIDs []string) ([]models.ShareBalance, error)
	UpsertShareBalance(ctx context.Context, item *models.ShareBalance) error
	ListOpenOrders(ctx context.Context, account string) ([]models.OpenOrder, error)
	UpsertOpenOrder(ctx context.Context, item *models.OpenOrder) error

	// Account activity counts.
	CountFills(ctx context.Context, params AccountRangeParams) (int64, error)
	CountMarketsTraded(ctx context.Context, params AccountRangeParams) (int64, error)
	CountSuccessfulDisputes(ctx context.Context, params AccountRangeParams) (int64, error)
	CountRedeemed(ctx context.Context, params AccountRangeParams) (int64, error)
	InsertDisputeRecord(ctx context.Context, item *models.DisputeRecord) error
	InsertRedeemRecord(ctx context.Context, item *models.RedeemRecord) error

	// Snapshots.
	InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error
}
