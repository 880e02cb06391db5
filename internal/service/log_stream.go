package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketpnl/internal/client/logfeed"
	"marketpnl/internal/models"
	"marketpnl/internal/repository"
)

// LogStreamService ingests the indexer's log feed into the event-log store.
// It trusts the feed: logs are assumed well-formed and correctly ordered
// within a (market, outcome) partition.
type LogStreamService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type LogStreamOptions struct {
	URL        string
	UniverseID string
}

func (s *LogStreamService) Run(ctx context.Context, opts LogStreamOptions) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	if s.Logger != nil {
		s.Logger.Info("log stream starting",
			zap.String("url", opts.URL),
			zap.String("universe", opts.UniverseID),
		)
	}
	stream := logfeed.NewStream(logfeed.StreamOptions{
		URL:        opts.URL,
		UniverseID: opts.UniverseID,
		Logger:     s.Logger,
	})
	return stream.Run(ctx, func(env logfeed.Envelope) {
		if err := s.handleEvent(ctx, env); err != nil && s.Logger != nil {
			s.Logger.Warn("handle log event failed",
				zap.String("event_type", env.EventType),
				zap.Uint64("block", env.BlockNumber),
				zap.Error(err),
			)
		}
	})
}

type profitLossChangedPayload struct {
	Market          string          `json:"market"`
	Outcome         int             `json:"outcome"`
	Account         string          `json:"account"`
	NetPosition     decimal.Decimal `json:"netPosition"`
	AvgPrice        decimal.Decimal `json:"avgPrice"`
	RealizedProfit  decimal.Decimal `json:"realizedProfit"`
	RealizedCost    decimal.Decimal `json:"realizedCost"`
	FrozenFunds     decimal.Decimal `json:"frozenFunds"`
	TransactionHash string          `json:"transactionHash"`
}

type orderFilledPayload struct {
	Market          string          `json:"market"`
	Outcome         int             `json:"outcome"`
	Creator         string          `json:"orderCreator"`
	Filler          string          `json:"orderFiller"`
	Price           decimal.Decimal `json:"price"`
	Amount          decimal.Decimal `json:"amountFilled"`
	TradeGroupID    string          `json:"tradeGroupId"`
	TransactionHash string          `json:"transactionHash"`
}

type marketPayload struct {
	Market                           string            `json:"market"`
	NumOutcomes                      int               `json:"numOutcomes"`
	MinPrice                         decimal.Decimal   `json:"minPrice"`
	MaxPrice                         decimal.Decimal   `json:"maxPrice"`
	NumTicks                         decimal.Decimal   `json:"numTicks"`
	Finalized                        bool              `json:"finalized"`
	FinalizationTimestamp            *int64            `json:"finalizationTimestamp"`
	ReportingState                   string            `json:"reportingState"`
	WinningPayoutNumerators          []decimal.Decimal `json:"winningPayoutNumerators"`
	TentativeWinningPayoutNumerators []decimal.Decimal `json:"tentativeWinningPayoutNumerators"`
}

type shareBalancePayload struct {
	Market  string          `json:"market"`
	Outcome int             `json:"outcome"`
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

type orderEventPayload struct {
	OrderID    string          `json:"orderId"`
	Market     string          `json:"market"`
	Outcome    int             `json:"outcome"`
	Account    string          `json:"orderCreator"`
	OrderType  string          `json:"orderType"`
	Amount     decimal.Decimal `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	OrderState string          `json:"orderState"`
}

type disputePayload struct {
	Market  string `json:"market"`
	Account string `json:"account"`
	Won     bool   `json:"won"`
}

type redeemPayload struct {
	Market  string          `json:"market"`
	Account string          `json:"sender"`
	Amount  decimal.Decimal `json:"numPayoutTokens"`
}

type universePayload struct {
	ChildUniverse  string `json:"childUniverse"`
	ParentUniverse string `json:"parentUniverse"`
}

func (s *LogStreamService) handleEvent(ctx context.Context, env logfeed.Envelope) error {
	switch env.EventType {
	case "ProfitLossChanged":
		var p profitLossChangedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.UpsertPositionChange(ctx, &models.PositionChange{
			UniverseID:      env.UniverseID,
			MarketID:        p.Market,
			Outcome:         p.Outcome,
			Account:         p.Account,
			Timestamp:       env.Timestamp,
			BlockNumber:     env.BlockNumber,
			LogIndex:        env.LogIndex,
			TransactionHash: p.TransactionHash,
			NetPosition:     p.NetPosition,
			AvgPrice:        p.AvgPrice,
			RealizedProfit:  p.RealizedProfit,
			RealizedCost:    p.RealizedCost,
			FrozenFunds:     p.FrozenFunds,
		})
	case "OrderFilled":
		var p orderFilledPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.InsertFill(ctx, &models.Fill{
			MarketID:        p.Market,
			Outcome:         p.Outcome,
			Creator:         p.Creator,
			Filler:          p.Filler,
			Price:           p.Price,
			Amount:          p.Amount,
			Timestamp:       env.Timestamp,
			BlockNumber:     env.BlockNumber,
			LogIndex:        env.LogIndex,
			TransactionHash: p.TransactionHash,
			TradeGroupID:    p.TradeGroupID,
		})
	case "MarketCreated", "MarketFinalized", "MarketMigrated", "ReportSubmitted":
		var p marketPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.UpsertMarket(ctx, &models.Market{
			ID:                               p.Market,
			UniverseID:                       env.UniverseID,
			NumOutcomes:                      p.NumOutcomes,
			MinPrice:                         p.MinPrice,
			MaxPrice:                         p.MaxPrice,
			NumTicks:                         p.NumTicks,
			Finalized:                        p.Finalized,
			FinalizationTimestamp:            p.FinalizationTimestamp,
			ReportingState:                   p.ReportingState,
			WinningPayoutNumerators:          p.WinningPayoutNumerators,
			TentativeWinningPayoutNumerators: p.TentativeWinningPayoutNumerators,
		})
	case "ShareTokenBalanceChanged":
		var p shareBalancePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.UpsertShareBalance(ctx, &models.ShareBalance{
			MarketID:    p.Market,
			Outcome:     p.Outcome,
			Account:     p.Account,
			Balance:     p.Balance,
			BlockNumber: env.BlockNumber,
			Timestamp:   env.Timestamp,
		})
	case "OrderEvent":
		var p orderEventPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.UpsertOpenOrder(ctx, &models.OpenOrder{
			OrderID:     p.OrderID,
			MarketID:    p.Market,
			Outcome:     p.Outcome,
			Account:     p.Account,
			OrderType:   p.OrderType,
			Amount:      p.Amount,
			Price:       p.Price,
			OrderState:  p.OrderState,
			Timestamp:   env.Timestamp,
			BlockNumber: env.BlockNumber,
			LogIndex:    env.LogIndex,
		})
	case "DisputeCrowdsourcerCompleted":
		var p disputePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.InsertDisputeRecord(ctx, &models.DisputeRecord{
			MarketID:    p.Market,
			Account:     p.Account,
			Won:         p.Won,
			Timestamp:   env.Timestamp,
			BlockNumber: env.BlockNumber,
			LogIndex:    env.LogIndex,
		})
	case "TradingProceedsClaimed":
		var p redeemPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.InsertRedeemRecord(ctx, &models.RedeemRecord{
			MarketID:    p.Market,
			Account:     p.Account,
			Amount:      p.Amount,
			Timestamp:   env.Timestamp,
			BlockNumber: env.BlockNumber,
			LogIndex:    env.LogIndex,
		})
	case "UniverseCreated":
		var p universePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		return s.Repo.UpsertUniverse(ctx, &models.Universe{
			ID:                p.ChildUniverse,
			ParentUniverseID:  p.ParentUniverse,
			CreationTimestamp: env.Timestamp,
		})
	}
	return nil
}
