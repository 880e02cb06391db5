package service

import (
	"context"

	"marketpnl/internal/models"
	"marketpnl/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	universes map[string]models.Universe
	markets   map[string]models.Market
	changes   []models.PositionChange
	fills     []models.Fill
	balances  []models.ShareBalance
	orders    []models.OpenOrder

	fillCount    int64
	marketCount  int64
	disputeCount int64
	redeemCount  int64

	snapshots []models.PortfolioSnapshot
}

func (s *stubRepo) GetUniverseByID(ctx context.Context, id string) (*models.Universe, error) {
	if u, ok := s.universes[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *stubRepo) UpsertUniverse(ctx context.Context, item *models.Universe) error { return nil }

func (s *stubRepo) ListMarketsByIDs(ctx context.Context, ids []string) ([]models.Market, error) {
	var out []models.Market
	for _, id := range ids {
		if m, ok := s.markets[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepo) UpsertMarket(ctx context.Context, item *models.Market) error { return nil }

func (s *stubRepo) ListPositionChanges(ctx context.Context, params repository.ListPositionChangesParams) ([]models.PositionChange, error) {
	var out []models.PositionChange
	for _, c := range s.changes {
		if c.Account != params.Account {
			continue
		}
		if params.MarketID != "" && c.MarketID != params.MarketID {
			continue
		}
		if params.EndTime > 0 && c.Timestamp > params.EndTime {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) UpsertPositionChange(ctx context.Context, item *models.PositionChange) error {
	s.changes = append(s.changes, *item)
	return nil
}

func (s *stubRepo) ListFills(ctx context.Context, params repository.ListFillsParams) ([]models.Fill, error) {
	ids := map[string]struct{}{}
	for _, id := range params.MarketIDs {
		ids[id] = struct{}{}
	}
	var out []models.Fill
	for _, f := range s.fills {
		if _, ok := ids[f.MarketID]; !ok {
			continue
		}
		if params.EndTime > 0 && f.Timestamp > params.EndTime {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *stubRepo) InsertFill(ctx context.Context, item *models.Fill) error {
	s.fills = append(s.fills, *item)
	return nil
}

func (s *stubRepo) ListShareBalances(ctx context.Context, account string, marketIDs []string) ([]models.ShareBalance, error) {
	var out []models.ShareBalance
	for _, b := range s.balances {
		if b.Account == account {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubRepo) UpsertShareBalance(ctx context.Context, item *models.ShareBalance) error {
	return nil
}

func (s *stubRepo) ListOpenOrders(ctx context.Context, account string) ([]models.OpenOrder, error) {
	var out []models.OpenOrder
	for _, o := range s.orders {
		if o.Account == account && o.OrderState == models.OrderStateOpen {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubRepo) UpsertOpenOrder(ctx context.Context, item *models.OpenOrder) error { return nil }

func (s *stubRepo) CountFills(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	return s.fillCount, nil
}

func (s *stubRepo) CountMarketsTraded(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	return s.marketCount, nil
}

func (s *stubRepo) CountSuccessfulDisputes(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	return s.disputeCount, nil
}

func (s *stubRepo) CountRedeemed(ctx context.Context, params repository.AccountRangeParams) (int64, error) {
	return s.redeemCount, nil
}

func (s *stubRepo) InsertDisputeRecord(ctx context.Context, item *models.DisputeRecord) error {
	return nil
}

func (s *stubRepo) InsertRedeemRecord(ctx context.Context, item *models.RedeemRecord) error {
	return nil
}

func (s *stubRepo) InsertPortfolioSnapshot(ctx context.Context, item *models.PortfolioSnapshot) error {
	s.snapshots = append(s.snapshots, *item)
	return nil
}

// stubChain is a fixed chain-time oracle.
type stubChain struct {
	now int64
}

func (c *stubChain) LatestBlockTimestamp(ctx context.Context) (int64, error) {
	return c.now, nil
}
