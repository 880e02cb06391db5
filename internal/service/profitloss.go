package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketpnl/internal/models"
	"marketpnl/internal/pnl"
	"marketpnl/internal/repository"
)

// ChainTime answers the current block timestamp, the default endTime for
// open-ended queries.
type ChainTime interface {
	LatestBlockTimestamp(ctx context.Context) (int64, error)
}

// defaultSummaryLookback covers the fixed two-point summary period.
const defaultSummaryLookback int64 = 24 * 60 * 60

type ProfitLossService struct {
	Repo   repository.Repository
	Chain  ChainTime
	Logger *zap.Logger
}

type ProfitLossParams struct {
	UniverseID string
	Account    string
	MarketID   string
	StartTime  int64
	EndTime    int64
	Interval   *int64
}

type TradingPositionsParams struct {
	UniverseID string
	Account    string
	MarketID   string
	EndTime    int64
}

// TradingPositions is the full per-outcome position set at one instant plus
// its market and portfolio rollups.
type TradingPositions struct {
	Positions        []pnl.Position          `json:"positions"`
	MarketSummaries  map[string]pnl.Position `json:"marketSummaries"`
	Portfolio        pnl.Position            `json:"portfolio"`
	FrozenFundsTotal decimal.Decimal         `json:"frozenFundsTotal"`
}

// ProfitLossSummary is the change between exactly two sample instants.
type ProfitLossSummary struct {
	StartTime       int64           `json:"startTime"`
	EndTime         int64           `json:"endTime"`
	RealizedDelta   decimal.Decimal `json:"realizedDelta"`
	UnrealizedDelta decimal.Decimal `json:"unrealizedDelta"`
	TotalDelta      decimal.Decimal `json:"totalDelta"`
	End             pnl.Position    `json:"end"`
}

// accountData is everything one query needs, fetched once: grouped records,
// market descriptors with scale contexts and display-scale share balances.
type accountData struct {
	positionLogs *pnl.Grouped[models.PositionChange]
	fillLogs     *pnl.Grouped[models.Fill]
	markets      map[string]models.Market
	scales       map[string]pnl.ScaleContext
	balances     map[string]map[int]decimal.Decimal
}

// GetProfitLoss samples the account's portfolio rollup at each bucket
// instant of [StartTime, EndTime] and returns one summary position per
// bucket, last always exactly at EndTime.
func (s *ProfitLossService) GetProfitLoss(ctx context.Context, params ProfitLossParams) ([]pnl.Position, error) {
	if err := s.validateScope(ctx, params.UniverseID, params.Account); err != nil {
		return nil, err
	}
	endTime, err := s.resolveEndTime(ctx, params.EndTime)
	if err != nil {
		return nil, err
	}
	buckets, err := pnl.Bucketize(params.StartTime, endTime, params.Interval)
	if err != nil {
		return nil, err
	}
	data, err := s.loadAccountData(ctx, params.UniverseID, params.Account, params.MarketID, endTime)
	if err != nil {
		return nil, err
	}

	series := make([]pnl.Position, 0, len(buckets))
	for _, instant := range buckets {
		positions := s.positionsAt(data, instant)
		point := pnl.Rollup(positions)
		point.Account = params.Account
		point.Timestamp = instant
		series = append(series, point)
	}
	return series, nil
}

// GetProfitLossSummary reports the profit change over the trailing lookback
// window as the delta between a two-point series.
func (s *ProfitLossService) GetProfitLossSummary(ctx context.Context, universeID, account string, lookback int64) (*ProfitLossSummary, error) {
	if lookback <= 0 {
		lookback = defaultSummaryLookback
	}
	endTime, err := s.resolveEndTime(ctx, 0)
	if err != nil {
		return nil, err
	}
	startTime := endTime - lookback
	if startTime < 0 {
		startTime = 0
	}
	interval := endTime - startTime
	series, err := s.GetProfitLoss(ctx, ProfitLossParams{
		UniverseID: universeID,
		Account:    account,
		StartTime:  startTime,
		EndTime:    endTime,
		Interval:   &interval,
	})
	if err != nil {
		return nil, err
	}
	if len(series) != 2 {
		return nil, fmt.Errorf("%w: summary produced %d buckets, want 2", pnl.ErrInconsistentBucketResult, len(series))
	}
	start, end := series[0], series[1]
	return &ProfitLossSummary{
		StartTime:       start.Timestamp,
		EndTime:         end.Timestamp,
		RealizedDelta:   end.Realized.Sub(start.Realized),
		UnrealizedDelta: end.Unrealized.Sub(start.Unrealized),
		TotalDelta:      end.Total.Sub(start.Total),
		End:             end,
	}, nil
}

// GetTradingPositions derives every per-outcome position held by the account
// at EndTime. Positions fully unwound by then are displayed from the record
// prior to the closing one rather than as a null vector.
func (s *ProfitLossService) GetTradingPositions(ctx context.Context, params TradingPositionsParams) (*TradingPositions, error) {
	if err := s.validateScope(ctx, params.UniverseID, params.Account); err != nil {
		return nil, err
	}
	endTime, err := s.resolveEndTime(ctx, params.EndTime)
	if err != nil {
		return nil, err
	}
	data, err := s.loadAccountData(ctx, params.UniverseID, params.Account, params.MarketID, endTime)
	if err != nil {
		return nil, err
	}

	result := &TradingPositions{
		MarketSummaries:  map[string]pnl.Position{},
		FrozenFundsTotal: decimal.Zero,
	}
	for _, marketID := range data.positionLogs.Markets() {
		market, ok := data.markets[marketID]
		if !ok {
			continue
		}
		sc := data.scales[marketID]
		var marketPositions []pnl.Position
		for _, outcome := range data.positionLogs.Outcomes(marketID) {
			records := data.positionLogs.Get(marketID, outcome)
			latest, ok := pnl.LatestBefore(records, endTime)
			if !ok {
				continue
			}
			fills := data.fillLogs.Get(marketID, outcome)
			val, ok := pnl.ResolvePrice(market, sc, outcome, endTime, fills, &latest)
			if !ok {
				continue
			}
			raw := data.balances[marketID][outcome]
			pos := pnl.CalculatePosition(latest, sc, val, nil, endTime, raw)
			if latest.NetPosition.IsZero() && !val.Finalized {
				if prior, ok := pnl.PriorToLatest(records, latest); ok {
					pos.NetPosition = sc.DisplayAmount(prior.NetPosition)
					pos.AveragePrice = sc.DisplayPrice(prior.AvgPrice)
				}
			}
			marketPositions = append(marketPositions, pos)
		}
		if len(marketPositions) == 0 {
			continue
		}
		result.Positions = append(result.Positions, marketPositions...)

		summary := pnl.Rollup(marketPositions)
		summary.MarketID = marketID
		summary.Account = params.Account
		summary.Timestamp = endTime
		result.MarketSummaries[marketID] = summary

		if !pnl.IsFullLoss(market, displayBalances(sc, data.balances[marketID])) {
			result.FrozenFundsTotal = result.FrozenFundsTotal.Add(summary.FrozenFunds)
		}
	}

	portfolio := pnl.Rollup(result.Positions)
	portfolio.Account = params.Account
	portfolio.Timestamp = endTime
	result.Portfolio = portfolio
	return result, nil
}

// positionsAt derives the per-outcome positions representable at instant.
// The 24-hour valuation reuses the instant's price, matching the behavior of
// the upstream ledger this mirrors; see DESIGN.md.
func (s *ProfitLossService) positionsAt(data *accountData, instant int64) []pnl.Position {
	var positions []pnl.Position
	for _, marketID := range data.positionLogs.Markets() {
		market, ok := data.markets[marketID]
		if !ok {
			continue
		}
		sc := data.scales[marketID]
		for _, outcome := range data.positionLogs.Outcomes(marketID) {
			records := data.positionLogs.Get(marketID, outcome)
			latest, ok := pnl.LatestBefore(records, instant)
			if !ok {
				continue
			}
			fills := data.fillLogs.Get(marketID, outcome)
			val, ok := pnl.ResolvePrice(market, sc, outcome, instant, fills, &latest)
			if !ok {
				continue
			}
			raw := data.balances[marketID][outcome]
			positions = append(positions, pnl.CalculatePosition(latest, sc, val, nil, instant, raw))
		}
	}
	return positions
}

func (s *ProfitLossService) loadAccountData(ctx context.Context, universeID, account, marketID string, endTime int64) (*accountData, error) {
	changes, err := s.Repo.ListPositionChanges(ctx, repository.ListPositionChangesParams{
		UniverseID: universeID,
		Account:    account,
		MarketID:   marketID,
		EndTime:    endTime,
	})
	if err != nil {
		return nil, err
	}
	data := &accountData{
		positionLogs: pnl.GroupByMarketOutcome(changes),
		markets:      map[string]models.Market{},
		scales:       map[string]pnl.ScaleContext{},
		balances:     map[string]map[int]decimal.Decimal{},
	}

	marketIDs := data.positionLogs.Markets()
	markets, err := s.Repo.ListMarketsByIDs(ctx, marketIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range markets {
		data.markets[m.ID] = m
		data.scales[m.ID] = pnl.NewScaleContext(m.MinPrice, m.MaxPrice, m.NumTicks)
	}

	fills, err := s.Repo.ListFills(ctx, repository.ListFillsParams{MarketIDs: marketIDs, EndTime: endTime})
	if err != nil {
		return nil, err
	}
	data.fillLogs = pnl.GroupByMarketOutcome(fills)

	balances, err := s.Repo.ListShareBalances(ctx, account, marketIDs)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		byOutcome, ok := data.balances[b.MarketID]
		if !ok {
			byOutcome = map[int]decimal.Decimal{}
			data.balances[b.MarketID] = byOutcome
		}
		byOutcome[b.Outcome] = b.Balance
	}
	return data, nil
}

func (s *ProfitLossService) validateScope(ctx context.Context, universeID, account string) error {
	if err := requireParam("universe", universeID); err != nil {
		return err
	}
	if err := requireParam("account", account); err != nil {
		return err
	}
	universe, err := s.Repo.GetUniverseByID(ctx, universeID)
	if err != nil {
		return err
	}
	if universe == nil {
		return fmt.Errorf("%w: %q", pnl.ErrUnknownUniverse, universeID)
	}
	return nil
}

func (s *ProfitLossService) resolveEndTime(ctx context.Context, endTime int64) (int64, error) {
	if endTime > 0 {
		return endTime, nil
	}
	if s.Chain == nil {
		return 0, fmt.Errorf("%w: endTime (no chain-time oracle)", pnl.ErrMissingRequiredParameter)
	}
	return s.Chain.LatestBlockTimestamp(ctx)
}

// displayBalances converts on-chain balances to display scale for the
// full-loss check and escrow estimation.
func displayBalances(sc pnl.ScaleContext, onChain map[int]decimal.Decimal) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(onChain))
	for outcome, balance := range onChain {
		out[outcome] = sc.DisplayAmount(balance)
	}
	return out
}

func requireParam(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", pnl.ErrMissingRequiredParameter, name)
	}
	return nil
}
