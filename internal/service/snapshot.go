package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"marketpnl/internal/models"
	"marketpnl/internal/repository"
)

// SnapshotService captures hourly portfolio rollups for a configured set of
// watched accounts, driven by cron.
type SnapshotService struct {
	Repo       repository.Repository
	PnL        *ProfitLossService
	Logger     *zap.Logger
	UniverseID string
	Accounts   []string
}

func (s *SnapshotService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.PnL == nil {
		return nil
	}
	snapshotAt := time.Now().UTC().Truncate(time.Hour)
	for _, account := range s.Accounts {
		account = strings.TrimSpace(account)
		if account == "" {
			continue
		}
		positions, err := s.PnL.GetTradingPositions(ctx, TradingPositionsParams{
			UniverseID: s.UniverseID,
			Account:    account,
		})
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("portfolio snapshot failed",
					zap.String("account", account),
					zap.Error(err),
				)
			}
			continue
		}
		open := 0
		for _, p := range positions.Positions {
			if !p.NetPosition.IsZero() {
				open++
			}
		}
		item := &models.PortfolioSnapshot{
			Account:       account,
			UniverseID:    s.UniverseID,
			SnapshotAt:    snapshotAt,
			Realized:      positions.Portfolio.Realized,
			Unrealized:    positions.Portfolio.Unrealized,
			FrozenFunds:   positions.FrozenFundsTotal,
			CurrentValue:  positions.Portfolio.CurrentValue,
			OpenPositions: open,
		}
		if err := s.Repo.InsertPortfolioSnapshot(ctx, item); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("insert portfolio snapshot failed",
					zap.String("account", account),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
