package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketpnl/internal/client/chain"
	"marketpnl/internal/config"
	cronrunner "marketpnl/internal/cron"
	"marketpnl/internal/db"
	"marketpnl/internal/handler"
	"marketpnl/internal/logger"
	gormrepository "marketpnl/internal/repository/gorm"
	"marketpnl/internal/service"
)

func main() {
	cfgPath := os.Getenv("PNL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("PNL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	dialCtx, dialCancel := context.WithTimeout(context.Background(), cfg.Chain.Timeout)
	chainClient, err := chain.Dial(dialCtx, cfg.Chain.RPCURL)
	dialCancel()
	if err != nil {
		logger.Fatal("chain dial failed", zap.Error(err))
	}
	defer chainClient.Close()

	store := gormrepository.New(dbConn.Gorm)
	pnlService := &service.ProfitLossService{Repo: store, Chain: chainClient, Logger: logger}
	fundsService := &service.FundsService{Repo: store, PnL: pnlService, Logger: logger}
	statsService := &service.AccountStatsService{Repo: store, Chain: chainClient, Logger: logger}
	snapshotService := &service.SnapshotService{
		Repo:       store,
		PnL:        pnlService,
		Logger:     logger,
		UniverseID: cfg.Snapshot.Universe,
		Accounts:   cfg.Snapshot.Accounts,
	}
	streamService := &service.LogStreamService{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	accountHandler := &handler.AccountHandler{
		PnL:    pnlService,
		Funds:  fundsService,
		Stats:  statsService,
		Logger: logger,
	}
	accountHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err := cronRunner.Add(cfg.Cron.PortfolioSnapshot, func(ctx context.Context) {
			if err := snapshotService.RunOnce(ctx); err != nil {
				logger.Warn("cron portfolio snapshot failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register portfolio snapshot failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	if cfg.Stream.Enabled {
		go func() {
			err := streamService.Run(ctx, service.LogStreamOptions{
				URL:        cfg.Stream.URL,
				UniverseID: cfg.Stream.Universe,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("log stream stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
