package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketpnl/internal/pnl"
	"marketpnl/internal/service"
)

// AccountHandler serves the per-account position, profit and funds queries.
type AccountHandler struct {
	PnL    *service.ProfitLossService
	Funds  *service.FundsService
	Stats  *service.AccountStatsService
	Logger *zap.Logger
}

func (h *AccountHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/accounts/:address")
	group.GET("/positions", h.positions)
	group.GET("/pnl", h.profitLoss)
	group.GET("/pnl/summary", h.profitLossSummary)
	group.GET("/frozen-funds", h.frozenFunds)
	group.GET("/stats", h.stats)
}

func (h *AccountHandler) positions(c *gin.Context) {
	if h.PnL == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.PnL.GetTradingPositions(c.Request.Context(), service.TradingPositionsParams{
		UniverseID: stringQuery(c, "universe"),
		Account:    accountParam(c),
		MarketID:   stringQuery(c, "market"),
		EndTime:    int64Query(c, "end_time", 0),
	})
	if err != nil {
		h.fail(c, "positions", err)
		return
	}
	Ok(c, result, nil)
}

func (h *AccountHandler) profitLoss(c *gin.Context) {
	if h.PnL == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	series, err := h.PnL.GetProfitLoss(c.Request.Context(), service.ProfitLossParams{
		UniverseID: stringQuery(c, "universe"),
		Account:    accountParam(c),
		MarketID:   stringQuery(c, "market"),
		StartTime:  int64Query(c, "start_time", 0),
		EndTime:    int64Query(c, "end_time", 0),
		Interval:   int64QueryPtr(c, "interval"),
	})
	if err != nil {
		h.fail(c, "pnl", err)
		return
	}
	Ok(c, series, map[string]any{"points": len(series)})
}

func (h *AccountHandler) profitLossSummary(c *gin.Context) {
	if h.PnL == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	summary, err := h.PnL.GetProfitLossSummary(
		c.Request.Context(),
		stringQuery(c, "universe"),
		accountParam(c),
		int64Query(c, "lookback", 0),
	)
	if err != nil {
		h.fail(c, "pnl summary", err)
		return
	}
	Ok(c, summary, nil)
}

func (h *AccountHandler) frozenFunds(c *gin.Context) {
	if h.Funds == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	funds, err := h.Funds.GetFrozenFundsTotal(c.Request.Context(), stringQuery(c, "universe"), accountParam(c))
	if err != nil {
		h.fail(c, "frozen funds", err)
		return
	}
	Ok(c, funds, nil)
}

func (h *AccountHandler) stats(c *gin.Context) {
	if h.Stats == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	stats, err := h.Stats.GetTimeRangedStats(c.Request.Context(), service.AccountStatsParams{
		UniverseID: stringQuery(c, "universe"),
		Account:    accountParam(c),
		StartTime:  int64Query(c, "start_time", 0),
		EndTime:    int64Query(c, "end_time", 0),
	})
	if err != nil {
		h.fail(c, "stats", err)
		return
	}
	Ok(c, stats, nil)
}

func (h *AccountHandler) fail(c *gin.Context, op string, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, pnl.ErrMissingRequiredParameter), errors.Is(err, pnl.ErrInvalidTimeRange):
		status = http.StatusBadRequest
	case errors.Is(err, pnl.ErrUnknownUniverse):
		status = http.StatusNotFound
	case errors.Is(err, pnl.ErrInconsistentBucketResult):
		status = http.StatusInternalServerError
	}
	if h.Logger != nil && status >= http.StatusInternalServerError {
		h.Logger.Warn("account query failed", zap.String("op", op), zap.Error(err))
	}
	Error(c, status, err.Error(), nil)
}

func accountParam(c *gin.Context) string {
	return strings.ToLower(strings.TrimSpace(c.Param("address")))
}
