package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"marketpnl/internal/pnl"
	"marketpnl/internal/repository"
)

type AccountStatsService struct {
	Repo   repository.Repository
	Chain  ChainTime
	Logger *zap.Logger
}

type AccountStatsParams struct {
	UniverseID string
	Account    string
	StartTime  int64
	EndTime    int64
}

// AccountTimeRangedStats are activity counts for one account over a range.
type AccountTimeRangedStats struct {
	StartTime          int64 `json:"startTime"`
	EndTime            int64 `json:"endTime"`
	Trades             int64 `json:"trades"`
	MarketsTraded      int64 `json:"marketsTraded"`
	SuccessfulDisputes int64 `json:"successfulDisputes"`
	RedeemedPositions  int64 `json:"redeemedPositions"`
}

func (s *AccountStatsService) GetTimeRangedStats(ctx context.Context, params AccountStatsParams) (*AccountTimeRangedStats, error) {
	if err := requireParam("universe", params.UniverseID); err != nil {
		return nil, err
	}
	if err := requireParam("account", params.Account); err != nil {
		return nil, err
	}
	universe, err := s.Repo.GetUniverseByID(ctx, params.UniverseID)
	if err != nil {
		return nil, err
	}
	if universe == nil {
		return nil, fmt.Errorf("%w: %q", pnl.ErrUnknownUniverse, params.UniverseID)
	}

	endTime := params.EndTime
	if endTime == 0 && s.Chain != nil {
		if endTime, err = s.Chain.LatestBlockTimestamp(ctx); err != nil {
			return nil, err
		}
	}
	if params.StartTime < 0 || endTime < 0 || endTime < params.StartTime {
		return nil, fmt.Errorf("%w: [%d, %d]", pnl.ErrInvalidTimeRange, params.StartTime, endTime)
	}

	scope := repository.AccountRangeParams{
		Account:   params.Account,
		StartTime: params.StartTime,
		EndTime:   endTime,
	}
	stats := &AccountTimeRangedStats{StartTime: params.StartTime, EndTime: endTime}
	if stats.Trades, err = s.Repo.CountFills(ctx, scope); err != nil {
		return nil, err
	}
	if stats.MarketsTraded, err = s.Repo.CountMarketsTraded(ctx, scope); err != nil {
		return nil, err
	}
	if stats.SuccessfulDisputes, err = s.Repo.CountSuccessfulDisputes(ctx, scope); err != nil {
		return nil, err
	}
	if stats.RedeemedPositions, err = s.Repo.CountRedeemed(ctx, scope); err != nil {
		return nil, err
	}
	return stats, nil
}
