package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketpnl/internal/models"
	"marketpnl/internal/pnl"
	"marketpnl/internal/repository"
)

type FundsService struct {
	Repo   repository.Repository
	PnL    *ProfitLossService
	Logger *zap.Logger
}

// OpenOrderEscrow is the estimated collateral locked by an account's resting
// orders.
type OpenOrderEscrow struct {
	Orders         []*models.OpenOrder `json:"orders"`
	TokensEscrowed decimal.Decimal     `json:"tokensEscrowed"`
	SharesEscrowed decimal.Decimal     `json:"sharesEscrowed"`
}

// FrozenFunds is the account's total funds at risk: position collateral
// (full-loss markets excluded) plus open-order escrow.
type FrozenFunds struct {
	PositionFrozenFunds decimal.Decimal `json:"positionFrozenFunds"`
	OrderEscrow         decimal.Decimal `json:"orderEscrow"`
	Total               decimal.Decimal `json:"total"`
}

// GetOpenOrderEscrow estimates tokens and shares escrowed per resting order.
// Orders are processed market by market (markets in ascending id order,
// orders in log order within a market) against a shared running balance, so
// an earlier order consumes a cross-outcome offset before a later one.
func (f *FundsService) GetOpenOrderEscrow(ctx context.Context, account string) (*OpenOrderEscrow, error) {
	if err := requireParam("account", account); err != nil {
		return nil, err
	}
	orders, err := f.Repo.ListOpenOrders(ctx, account)
	if err != nil {
		return nil, err
	}
	result := &OpenOrderEscrow{
		TokensEscrowed: decimal.Zero,
		SharesEscrowed: decimal.Zero,
	}
	if len(orders) == 0 {
		return result, nil
	}

	byMarket := map[string][]*models.OpenOrder{}
	marketIDs := make([]string, 0)
	for i := range orders {
		order := &orders[i]
		if _, ok := byMarket[order.MarketID]; !ok {
			marketIDs = append(marketIDs, order.MarketID)
		}
		byMarket[order.MarketID] = append(byMarket[order.MarketID], order)
	}
	sort.Strings(marketIDs)

	markets, err := f.Repo.ListMarketsByIDs(ctx, marketIDs)
	if err != nil {
		return nil, err
	}
	marketByID := map[string]models.Market{}
	for _, m := range markets {
		marketByID[m.ID] = m
	}

	shareRows, err := f.Repo.ListShareBalances(ctx, account, marketIDs)
	if err != nil {
		return nil, err
	}
	onChain := map[string]map[int]decimal.Decimal{}
	for _, b := range shareRows {
		byOutcome, ok := onChain[b.MarketID]
		if !ok {
			byOutcome = map[int]decimal.Decimal{}
			onChain[b.MarketID] = byOutcome
		}
		byOutcome[b.Outcome] = b.Balance
	}

	for _, marketID := range marketIDs {
		market, ok := marketByID[marketID]
		if !ok {
			continue
		}
		sc := pnl.NewScaleContext(market.MinPrice, market.MaxPrice, market.NumTicks)
		balances := displayBalances(sc, onChain[marketID])
		pnl.EstimateEscrow(byMarket[marketID], market, sc, balances)
		for _, order := range byMarket[marketID] {
			result.Orders = append(result.Orders, order)
			result.TokensEscrowed = result.TokensEscrowed.Add(order.TokensEscrowed)
			result.SharesEscrowed = result.SharesEscrowed.Add(order.SharesEscrowed)
		}
	}
	return result, nil
}

// GetFrozenFundsTotal sums position frozen funds (excluding markets resolved
// as a full loss) with open-order escrow.
func (f *FundsService) GetFrozenFundsTotal(ctx context.Context, universeID, account string) (*FrozenFunds, error) {
	positions, err := f.PnL.GetTradingPositions(ctx, TradingPositionsParams{
		UniverseID: universeID,
		Account:    account,
	})
	if err != nil {
		return nil, err
	}
	escrow, err := f.GetOpenOrderEscrow(ctx, account)
	if err != nil {
		return nil, err
	}
	return &FrozenFunds{
		PositionFrozenFunds: positions.FrozenFundsTotal,
		OrderEscrow:         escrow.TokensEscrowed,
		Total:               positions.FrozenFundsTotal.Add(escrow.TokensEscrowed),
	}, nil
}
